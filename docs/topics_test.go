package docs

import (
	"bufio"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// indexTopics extracts the topics listed by the index as "* topic: summary".
func indexTopics(t *testing.T) []string {
	t.Helper()
	index, err := GetTopic(Index)
	if err != nil {
		t.Fatalf("GetTopic(%q) error: %v", Index, err)
	}
	re := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	var topics []string
	scanner := bufio.NewScanner(strings.NewReader(index))
	for scanner.Scan() {
		if m := re.FindStringSubmatch(scanner.Text()); len(m) > 1 {
			topics = append(topics, strings.TrimSpace(m[1]))
		}
	}
	return topics
}

func TestTopics(t *testing.T) {
	// The index and the topic files must stay in sync.
	listed := indexTopics(t)
	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() error: %v", err)
	}
	for _, topic := range listed {
		if !slices.Contains(all, topic) {
			t.Errorf("topic %q is listed in the index but has no file", topic)
		}
	}
	for _, topic := range all {
		if !slices.Contains(listed, topic) {
			t.Errorf("topic %q is not listed in the index", topic)
		}
	}
}

func TestTopicsStartWithTitle(t *testing.T) {
	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() error: %v", err)
	}
	for _, topic := range all {
		content, err := GetTopic(topic)
		if err != nil {
			t.Fatalf("GetTopic(%q) error: %v", topic, err)
		}
		source := []byte(content)
		doc := goldmark.New().Parser().Parse(text.NewReader(source))
		h, ok := doc.FirstChild().(*ast.Heading)
		if !ok || h.Level != 1 {
			t.Errorf("topic %q does not start with a level 1 heading", topic)
		}
	}
}

func TestGetTopic(t *testing.T) {
	if _, err := GetTopic("unknown"); err == nil {
		t.Errorf("GetTopic(unknown) returned no error")
	}
	all, err := GetTopic("*")
	if err != nil {
		t.Fatalf("GetTopic(*) error: %v", err)
	}
	for _, title := range []string{"# Ledger", "# Share Value", "# Stress"} {
		if !strings.Contains(all, title) {
			t.Errorf("GetTopic(*) misses %q", title)
		}
	}
	if strings.Contains(all, "# Club Documentation") {
		t.Errorf("GetTopic(*) includes the index")
	}
}
