package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/club"
	"github.com/etnz/club/date"
	"github.com/etnz/club/renderer"
	"github.com/google/subcommands"
)

type addMemberCmd struct {
	id      string
	name    string
	email   string
	phone   string
	joined  string
	profile string
}

func (*addMemberCmd) Name() string     { return "add-member" }
func (*addMemberCmd) Synopsis() string { return "onboard a new member without shares" }
func (*addMemberCmd) Usage() string {
	return `club add-member -name <name> -email <email> [-id <id>] [-phone <phone>] [-d <date>] [-profile <profile>]

  Adds an active member. Shares are issued by the member's deposits.
`
}

func (c *addMemberCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Member id, generated when empty")
	f.StringVar(&c.name, "name", "", "Member name")
	f.StringVar(&c.email, "email", "", "Member email")
	f.StringVar(&c.phone, "phone", "", "Member phone")
	f.StringVar(&c.joined, "d", "", "Join date (YYYY-MM-DD), today by default")
	f.StringVar(&c.profile, "profile", "", "Investor profile")
}

func (c *addMemberCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var joined date.Date
	if c.joined != "" {
		var err error
		if joined, err = date.Parse(c.joined); err != nil {
			fmt.Fprintf(stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	m := club.NewMember(c.id, c.name, c.email, c.phone, joined, c.profile)
	return withClub(ctx, func(s *session) error {
		m, err := s.club.AddMember(ctx, m)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Added member %s (%s)\n", m.Name, m.ID)
		return nil
	})
}

type reportCmd struct {
	id    string
	email string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the statement of a member" }
func (*reportCmd) Usage() string {
	return `club report -member <id> -email <email>

  Displays the equity, gain, ownership and cash flows of a member. The email
  must match the member's.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "member", "", "Member id")
	f.StringVar(&c.email, "email", "", "Member email")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return withClub(ctx, func(s *session) error {
		r, err := s.club.MemberReport(c.id, c.email)
		if err != nil {
			return err
		}
		printMarkdown(renderer.MemberReportMarkdown(r))
		return nil
	})
}
