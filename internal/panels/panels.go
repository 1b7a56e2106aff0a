// Package panels maps each console view to the content panel it displays.
// Both the web and terminal front ends render panels from this one mapping.
package panels

import (
	"github.com/Zachkp/spotlight/internal/console"
	"github.com/Zachkp/spotlight/internal/content"
)

// Panel is a renderer-neutral description of one view.
type Panel struct {
	View     console.View
	Title    string
	Subtitle string
	Link     *content.Link
	Sections []Section
}

type Section struct {
	Heading string
	Items   []Item
}

type Item struct {
	Title   string
	Meta    string
	Body    string
	Bullets []string
	Tags    []string
	URL     string
}

// Builder constructs the panel for one view.
type Builder func(content.Portfolio) Panel

// Registry holds the builder for every view.
type Registry struct {
	portfolio content.Portfolio
	builders  map[console.View]Builder
}

// NewRegistry returns a registry with a builder for every view of the default catalog.
func NewRegistry(p content.Portfolio) *Registry {
	return &Registry{
		portfolio: p,
		builders: map[console.View]Builder{
			console.ViewAbout:      about,
			console.ViewProjects:   projects,
			console.ViewExperience: experience,
			console.ViewTech:       tech,
			console.ViewContact:    contact,
		},
	}
}

// Register adds or replaces the builder for view.
func (r *Registry) Register(view console.View, b Builder) {
	r.builders[view] = b
}

// Portfolio returns the dataset the registry builds from.
func (r *Registry) Portfolio() content.Portfolio { return r.portfolio }

// Build returns the panel for view. ViewNone and unregistered views report false.
func (r *Registry) Build(view console.View) (Panel, bool) {
	b, ok := r.builders[view]
	if !ok || view == console.ViewNone {
		return Panel{}, false
	}
	p := b(r.portfolio)
	p.View = view
	return p, true
}

func about(p content.Portfolio) Panel {
	services := make([]Item, 0, len(p.Services))
	for _, s := range p.Services {
		services = append(services, Item{Title: s})
	}
	return Panel{
		Title:    p.Name,
		Subtitle: joinMeta(append(append([]string{}, p.Headline...), p.Location)),
		Sections: []Section{
			{Items: []Item{{Body: p.About}}},
			{Heading: "What I do", Items: services},
		},
	}
}

func projects(p content.Portfolio) Panel {
	items := make([]Item, 0, len(p.Projects))
	for _, pr := range p.Projects {
		items = append(items, Item{
			Title: pr.Name,
			Body:  pr.Description,
			Tags:  pr.Tags,
			URL:   pr.SourceURL,
		})
	}
	return Panel{
		Title:    "Featured Projects",
		Link:     &content.Link{Title: "View all on GitHub", URL: p.GitHubURL},
		Sections: []Section{{Items: items}},
	}
}

func experience(p content.Portfolio) Panel {
	items := make([]Item, 0, len(p.Experiences))
	for _, e := range p.Experiences {
		items = append(items, Item{
			Title:   e.Title,
			Meta:    e.Date,
			Body:    e.Company,
			Bullets: e.Points,
		})
	}
	return Panel{
		Title:    "Experience",
		Sections: []Section{{Items: items}},
	}
}

func tech(p content.Portfolio) Panel {
	items := make([]Item, 0, len(p.Tech))
	for _, t := range p.Tech {
		items = append(items, Item{Title: t})
	}
	return Panel{
		Title:    "Tech Ecosystem",
		Subtitle: "Tools and frameworks I use to build robust applications.",
		Sections: []Section{{Items: items}},
	}
}

func contact(p content.Portfolio) Panel {
	items := make([]Item, 0, len(p.Connect))
	for _, l := range p.Connect {
		items = append(items, Item{Title: l.Title, URL: l.URL})
	}
	return Panel{
		Title:    "Let's work together",
		Subtitle: "I am currently available for freelance work and full-time positions.",
		Link:     &content.Link{Title: "Send an Email", URL: "mailto:" + p.Email},
		Sections: []Section{{Items: items}},
	}
}

func joinMeta(parts []string) string {
	out := ""
	for _, s := range parts {
		if s == "" {
			continue
		}
		if out != "" {
			out += " | "
		}
		out += s
	}
	return out
}
