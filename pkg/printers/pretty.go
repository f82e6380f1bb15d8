package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/scribe/pkg/post"
	"tableflip.dev/scribe/pkg/timeutil"
)

type PrettyPrint struct {
	ShowID bool
	Now    func() time.Time
}

func (pp *PrettyPrint) now() time.Time {
	if pp.Now != nil {
		return pp.Now()
	}
	return time.Now()
}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)
	switch count {
	case 1:
		_, _ = c.Println(" post")
	default:
		_, _ = c.Println(" posts")
	}
}

// Posts renders the list the way the TUI orders it, newest first.
func (pp *PrettyPrint) Posts(posts ...post.Post) {
	if len(posts) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	table := uitable.New()
	table.MaxColWidth = 60
	table.Wrap = true

	if pp.ShowID {
		table.AddRow("ID", "TITLE", "SUMMARY", "CREATED")
	} else {
		table.AddRow("TITLE", "SUMMARY", "CREATED")
	}
	for _, p := range posts {
		age := timeutil.Relative(p.CreatedAt, pp.now())
		if pp.ShowID {
			table.AddRow(p.ID, p.Title, p.Summary(60), age)
		} else {
			table.AddRow(p.Title, p.Summary(60), age)
		}
	}
	fmt.Println(table.String())
	fmt.Println("")
}

// Post renders a single post in full.
func (pp *PrettyPrint) Post(p *post.Post) {
	t := color.New(color.Bold)
	f := color.New(color.Faint)

	_, _ = t.Println(p.Title)
	if pp.ShowID {
		_, _ = f.Printf("%s  ", p.ID)
	}
	_, _ = f.Printf("created %s", timeutil.Relative(p.CreatedAt, pp.now()))
	if !p.UpdatedAt.IsZero() && p.UpdatedAt.After(p.CreatedAt) {
		_, _ = f.Printf(", updated %s", timeutil.Relative(p.UpdatedAt, pp.now()))
	}
	fmt.Println("")
	fmt.Println(strings.TrimRight(p.Content, "\n"))
	fmt.Println("")
}
