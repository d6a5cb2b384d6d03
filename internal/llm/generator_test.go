package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient records prompts and returns a canned reply.
type fakeClient struct {
	reply   string
	err     error
	prompts []string
	opts    []Options
	closed  int
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, opts Options) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.opts = append(f.opts, opts)
	return f.reply, f.err
}

func (f *fakeClient) Model() string { return "fake" }

func (f *fakeClient) Close() error {
	f.closed++
	return nil
}

func newTestGenerator(key string, client *fakeClient) (*Generator, *int) {
	calls := 0
	factory := func(_ context.Context, _ *Config, apiKey string) (Client, error) {
		calls++
		if apiKey != key {
			return nil, errors.New("unexpected key")
		}
		return client, nil
	}
	return NewGenerator(DefaultConfig(), StaticCredential(key), WithClientFactory(factory)), &calls
}

func TestJobDescription_Prompt(t *testing.T) {
	client := &fakeClient{reply: "- Built things"}
	g, _ := newTestGenerator("sk-test", client)

	text, err := g.JobDescription(context.Background(), JobDescriptionRequest{
		JobTitle: "Backend Engineer", Company: "Acme", Years: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, "- Built things", text)
	require.Len(t, client.prompts, 1)
	assert.Equal(t,
		"Write a professional job description for a Backend Engineer role at Acme with 3 years of experience. "+
			"Format it as 3-5 bullet points.",
		client.prompts[0])
	assert.Equal(t, Options{MaxTokens: 500, Temperature: 0.7}, client.opts[0])
	assert.Equal(t, 1, client.closed)
}

func TestSummary_Prompt(t *testing.T) {
	client := &fakeClient{reply: "Seasoned engineer."}
	g, _ := newTestGenerator("sk-test", client)

	_, err := g.Summary(context.Background(), SummaryRequest{
		JobTitle: "SRE", Years: 6, Skills: []string{"Go", " ", "Kubernetes"},
	})
	require.NoError(t, err)

	assert.Equal(t,
		"Write a professional summary for a SRE with 6 years of experience. "+
			"Skills include: Go, Kubernetes. Keep it concise (3-4 sentences).",
		client.prompts[0])
}

func TestCoverLetter_Prompt(t *testing.T) {
	tests := []struct {
		name           string
		jobDescription string
		want           string
	}{
		{
			name: "without job description",
			want: "Write a professional cover letter for Ada applying for a Programmer position at Babbage & Co. " +
				"Experience: 10 years of engines. Keep it to 3-4 paragraphs, professional tone.",
		},
		{
			name:           "with job description",
			jobDescription: "Program the engine",
			want: "Write a professional cover letter for Ada applying for a Programmer position at Babbage & Co. " +
				"Experience: 10 years of engines. Job description: Program the engine. " +
				"Keep it to 3-4 paragraphs, professional tone.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{reply: "Dear hiring manager"}
			g, _ := newTestGenerator("sk-test", client)

			_, err := g.CoverLetter(context.Background(), CoverLetterRequest{
				Name: "Ada", JobTitle: "Programmer", Company: "Babbage & Co",
				Experience: "10 years of engines", JobDescription: tt.jobDescription,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, client.prompts[0])
			assert.Equal(t, 800, client.opts[0].MaxTokens)
		})
	}
}

func TestGenerator_MissingCredentialSkipsNetwork(t *testing.T) {
	client := &fakeClient{reply: "unused"}
	g, calls := newTestGenerator("", client)

	_, err := g.JobDescription(context.Background(), JobDescriptionRequest{JobTitle: "x", Company: "y", Years: 1})
	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Equal(t, 0, *calls)
	assert.Empty(t, client.prompts)
	assert.False(t, g.HasCredential())

	nilSource := NewGenerator(nil, nil)
	_, err = nilSource.Summary(context.Background(), SummaryRequest{JobTitle: "x", Years: 1})
	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Contains(t, err.Error(), "OpenAI API key")
}

func TestGenerator_MissingCredentialNamesProvider(t *testing.T) {
	g := NewGenerator(DefaultGeminiConfig(), StaticCredential(""))

	_, err := g.Summary(context.Background(), SummaryRequest{JobTitle: "x", Years: 1})
	require.ErrorIs(t, err, ErrMissingCredential)
	assert.Contains(t, err.Error(), "Gemini API key")
	assert.NotContains(t, err.Error(), "OpenAI")
}

func TestCoverLetter_TemplateSyntaxInUserText(t *testing.T) {
	tests := []string{
		"Maintain Helm charts using {{.Values.image}} templates.",
		"Report to {{.Name}}",
	}
	for _, jobDescription := range tests {
		t.Run(jobDescription, func(t *testing.T) {
			client := &fakeClient{reply: "Dear hiring manager"}
			g, _ := newTestGenerator("sk-test", client)

			_, err := g.CoverLetter(context.Background(), CoverLetterRequest{
				Name: "Ada", JobTitle: "Platform Engineer", Company: "Acme",
				Experience: "Ran {{.Company}} deploys", JobDescription: jobDescription,
			})
			require.NoError(t, err)
			require.Len(t, client.prompts, 1)
			assert.Contains(t, client.prompts[0], "Job description: "+jobDescription+".")
			assert.Contains(t, client.prompts[0], "Experience: Ran {{.Company}} deploys.")
		})
	}
}

func TestGenerator_MissingInput(t *testing.T) {
	client := &fakeClient{reply: "unused"}
	g, calls := newTestGenerator("sk-test", client)
	ctx := context.Background()

	_, err := g.JobDescription(ctx, JobDescriptionRequest{JobTitle: "Engineer"})
	assert.ErrorIs(t, err, ErrMissingInput)

	_, err = g.Summary(ctx, SummaryRequest{JobTitle: "Engineer"})
	assert.ErrorIs(t, err, ErrMissingInput)

	_, err = g.CoverLetter(ctx, CoverLetterRequest{JobTitle: "Engineer", Company: "Acme"})
	assert.ErrorIs(t, err, ErrMissingInput)

	assert.Equal(t, 0, *calls)
}

func TestGenerator_ServiceFailure(t *testing.T) {
	client := &fakeClient{err: errors.New("429 rate limited")}
	g, _ := newTestGenerator("sk-test", client)

	_, err := g.Summary(context.Background(), SummaryRequest{JobTitle: "SRE", Years: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Len(t, client.prompts, 1, "no retry")
}

func TestGenerator_EmptyReply(t *testing.T) {
	g, _ := newTestGenerator("sk-test", &fakeClient{reply: "```\n```"})

	_, err := g.Summary(context.Background(), SummaryRequest{JobTitle: "SRE", Years: 2})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestDraftJobDescription_WritesBack(t *testing.T) {
	s := store.New()
	id, err := s.AddItem("experience")
	require.NoError(t, err)
	require.NoError(t, store.UpdateItem(s, "experience", id, func(e *types.ExperienceItem) {
		e.Position = "Analyst"
		e.Company = "Initech"
		e.StartDate = "2019-01-01"
		e.EndDate = "2021-01-01"
	}))

	client := &fakeClient{reply: "- Filed TPS reports"}
	g, _ := newTestGenerator("sk-test", client)

	text, err := DraftJobDescription(context.Background(), g, s, "experience", id, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "- Filed TPS reports", text)
	assert.Contains(t, client.prompts[0], "with 2 years of experience")

	item, err := store.FindItem[types.ExperienceItem](s, "experience", id)
	require.NoError(t, err)
	assert.Equal(t, "- Filed TPS reports", item.Description)
}

func TestDraftJobDescription_FailureLeavesStateUntouched(t *testing.T) {
	s := store.New()
	id, err := s.AddItem("experience")
	require.NoError(t, err)
	before := s.State()

	g, _ := newTestGenerator("sk-test", &fakeClient{reply: "x"})
	_, err = DraftJobDescription(context.Background(), g, s, "experience", id, time.Now())
	assert.ErrorIs(t, err, ErrMissingInput)
	assert.Equal(t, before, s.State())
}

func TestDraftSummary_UsesDocumentSkills(t *testing.T) {
	s := store.New()
	require.NoError(t, store.UpdateItem(s, "skills", "technical", func(c *types.SkillCategory) {
		c.Skills = []string{"Go", "SQL"}
	}))

	client := &fakeClient{reply: "\"Pragmatic engineer.\""}
	g, _ := newTestGenerator("sk-test", client)

	text, err := DraftSummary(context.Background(), g, s, "summary", SummaryRequest{JobTitle: "Engineer", Years: 5})
	require.NoError(t, err)
	assert.Equal(t, "Pragmatic engineer.", text)
	assert.Contains(t, client.prompts[0], "Skills include: Go, SQL.")

	section, _ := s.Section("summary")
	assert.Equal(t, "Pragmatic engineer.", section.Content.(*types.SummaryContent).Summary)
}

func TestDraftSummary_WrongSection(t *testing.T) {
	s := store.New()
	g, _ := newTestGenerator("sk-test", &fakeClient{reply: "x"})

	_, err := DraftSummary(context.Background(), g, s, "skills", SummaryRequest{JobTitle: "x", Years: 1})
	assert.ErrorIs(t, err, types.ErrContentMismatch)

	_, err = DraftSummary(context.Background(), g, s, "nope", SummaryRequest{JobTitle: "x", Years: 1})
	assert.ErrorIs(t, err, store.ErrSectionNotFound)
}

func TestDraftCoverLetter_Defaults(t *testing.T) {
	s := store.New()
	require.NoError(t, s.UpdateSection("contact", store.SectionPatch{Content: &types.ContactContent{Name: "Grace"}}))
	id, err := s.AddItem("experience")
	require.NoError(t, err)
	require.NoError(t, store.UpdateItem(s, "experience", id, func(e *types.ExperienceItem) {
		e.Position = "Rear Admiral"
		e.Company = "US Navy"
	}))

	client := &fakeClient{reply: "Dear team"}
	g, _ := newTestGenerator("sk-test", client)

	_, err = DraftCoverLetter(context.Background(), g, s.State(), CoverLetterRequest{JobTitle: "Compiler Engineer", Company: "Remington Rand"})
	require.NoError(t, err)
	assert.Contains(t, client.prompts[0], "cover letter for Grace applying")
	assert.Contains(t, client.prompts[0], "Experience: Rear Admiral at US Navy.")
}
