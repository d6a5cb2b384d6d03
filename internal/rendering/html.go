package rendering

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
)

// PreviewElementID is the id of the element holding the rendered resume. Export
// prints exactly this element.
const PreviewElementID = "resume-preview"

//go:embed templates/*.tmpl
var templateFiles embed.FS

//go:embed styles/*.css
var styleFiles embed.FS

var pageTemplate = sync.OnceValues(func() (*template.Template, error) {
	tmpl, err := template.ParseFS(templateFiles, "templates/resume.html.tmpl")
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse page template", Cause: err}
	}
	return tmpl, nil
})

type pageData struct {
	Title     string
	Template  types.Template
	ElementID string
	CSS       template.CSS
	Sections  []sectionView
}

type sectionView struct {
	ID          string
	Kind        string
	Title       string
	Contact     types.ContactContent
	ContactLine []string
	Text        string
	Entries     []entryView
	Skills      []skillView
}

type entryView struct {
	Heading     string
	Subheading  string
	Link        string
	Dates       string
	Description string
}

type skillView struct {
	Name   string
	Skills string
}

// Stylesheet returns the CSS for a template, base rules included.
func Stylesheet(t types.Template) (string, error) {
	if !t.Valid() {
		return "", &TemplateError{Message: fmt.Sprintf("unknown template %q", t), Cause: types.ErrUnknownTemplate}
	}
	base, err := styleFiles.ReadFile("styles/base.css")
	if err != nil {
		return "", &TemplateError{Message: "failed to read base stylesheet", Cause: err}
	}
	css, err := styleFiles.ReadFile("styles/" + string(t) + ".css")
	if err != nil {
		return "", &TemplateError{Message: fmt.Sprintf("failed to read stylesheet for %s", t), Cause: err}
	}
	return string(base) + "\n" + string(css), nil
}

// RenderHTML renders the document as a standalone HTML page. Sections appear in order;
// empty sections are skipped except for the contact header.
func RenderHTML(state types.DocumentState) (string, error) {
	tmpl, err := pageTemplate()
	if err != nil {
		return "", err
	}
	css, err := Stylesheet(state.Template)
	if err != nil {
		return "", err
	}

	data := pageData{
		Title:     pageTitle(state),
		Template:  state.Template,
		ElementID: PreviewElementID,
		CSS:       template.CSS(css),
	}
	for _, section := range state.SortedSections() {
		if view, ok := buildSection(section); ok {
			data.Sections = append(data.Sections, view)
		}
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", &RenderError{Message: "failed to execute page template", Cause: err}
	}
	return out.String(), nil
}

func pageTitle(state types.DocumentState) string {
	if name := strings.TrimSpace(state.ResumeName); name != "" {
		return name
	}
	return types.DefaultResumeName
}

// buildSection flattens a section into its view. ok is false for sections with
// nothing to show.
func buildSection(section types.Section) (view sectionView, ok bool) {
	if section.Content == nil {
		return sectionView{}, false
	}
	if section.Type != types.SectionContact && section.Content.IsEmpty() {
		return sectionView{}, false
	}

	view = sectionView{ID: section.ID, Kind: string(section.Type), Title: section.Title}

	switch c := section.Content.(type) {
	case *types.ContactContent:
		view.Contact = *c
		view.ContactLine = nonEmpty(c.Email, c.Phone, c.Location, c.LinkedIn, c.Website)
	case *types.SummaryContent:
		view.Text = strings.TrimSpace(c.Summary)
	case *types.CustomContent:
		view.Text = strings.TrimSpace(c.Text)
	case *types.ExperienceContent:
		for _, item := range c.Items {
			view.Entries = append(view.Entries, entryView{
				Heading:     item.Position,
				Subheading:  item.Company,
				Dates:       types.DateRange(item.StartDate, item.EndDate, item.Current),
				Description: strings.TrimSpace(item.Description),
			})
		}
	case *types.EducationContent:
		for _, item := range c.Items {
			view.Entries = append(view.Entries, entryView{
				Heading:     item.Institution,
				Subheading:  degreeLine(item.Degree, item.Field),
				Dates:       types.DateRange(item.StartDate, item.EndDate, item.Current),
				Description: strings.TrimSpace(item.Description),
			})
		}
	case *types.ProjectsContent:
		for _, item := range c.Items {
			view.Entries = append(view.Entries, entryView{
				Heading:     item.Title,
				Link:        item.Link,
				Dates:       types.DateRange(item.StartDate, item.EndDate, false),
				Description: strings.TrimSpace(item.Description),
			})
		}
	case *types.SkillsContent:
		for _, category := range c.Categories {
			view.Skills = append(view.Skills, skillView{
				Name:   category.Name,
				Skills: strings.Join(nonEmpty(category.Skills...), ", "),
			})
		}
	default:
		return sectionView{}, false
	}
	return view, true
}

// degreeLine renders "Degree in Field", dropping whichever half is blank.
func degreeLine(degree, field string) string {
	degree, field = strings.TrimSpace(degree), strings.TrimSpace(field)
	switch {
	case degree != "" && field != "":
		return degree + " in " + field
	case degree != "":
		return degree
	default:
		return field
	}
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
