// Package github maps GitHub issues to raw items.
package github

import (
	"fmt"
	"strings"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
)

// IssueToRawItem converts an issue and its comments into a markdown RawItem.
// The external ID is "<owner>/<repo>#<number>", so re-fetching the same
// issue maps to the same document. Pull requests are rejected with
// domain.ErrUnsupportedType.
func IssueToRawItem(issue *gh.Issue, comments ...*gh.IssueComment) (domain.RawItem, error) {
	if issue == nil {
		return domain.RawItem{}, fmt.Errorf("%w: nil issue", domain.ErrInvalidInput)
	}
	if issue.IsPullRequest() {
		return domain.RawItem{}, fmt.Errorf("%w: pull request #%d", domain.ErrUnsupportedType, issue.GetNumber())
	}

	repo := repoFullName(issue)
	if repo == "" {
		return domain.RawItem{}, fmt.Errorf("%w: issue #%d has no repository", domain.ErrInvalidInput, issue.GetNumber())
	}

	item := domain.RawItem{
		Provider:   domain.ProviderGitHub,
		ExternalID: fmt.Sprintf("%s#%d", repo, issue.GetNumber()),
		MIME:       domain.MIMEMarkdown,
		Title:      issue.GetTitle(),
		Content:    buildIssueMarkdown(issue, comments),
		URL:        issue.GetHTMLURL(),
	}
	if created := issue.GetCreatedAt(); !created.IsZero() {
		t := created.UTC()
		item.CreatedAt = &t
	}
	return item, nil
}

// repoFullName prefers the embedded repository and falls back to the API URL.
func repoFullName(issue *gh.Issue) string {
	if name := issue.GetRepository().GetFullName(); name != "" {
		return name
	}
	url := issue.GetRepositoryURL()
	if i := strings.Index(url, "/repos/"); i >= 0 {
		return url[i+len("/repos/"):]
	}
	return ""
}

// buildIssueMarkdown renders the issue body, labels and comments.
func buildIssueMarkdown(issue *gh.Issue, comments []*gh.IssueComment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", issue.GetTitle())

	meta := []string{"State: " + issue.GetState()}
	if author := issue.GetUser().GetLogin(); author != "" {
		meta = append(meta, "Author: @"+author)
	}
	if len(issue.Labels) > 0 {
		labels := make([]string, 0, len(issue.Labels))
		for _, l := range issue.Labels {
			labels = append(labels, l.GetName())
		}
		meta = append(meta, "Labels: "+strings.Join(labels, ", "))
	}
	if issue.Milestone != nil {
		meta = append(meta, "Milestone: "+issue.Milestone.GetTitle())
	}
	b.WriteString(strings.Join(meta, " | "))
	b.WriteString("\n")

	if body := strings.TrimSpace(issue.GetBody()); body != "" {
		b.WriteString("\n")
		b.WriteString(body)
		b.WriteString("\n")
	}

	for _, c := range comments {
		if c == nil {
			continue
		}
		fmt.Fprintf(&b, "\n## @%s (%s)\n\n%s\n",
			c.GetUser().GetLogin(), c.GetCreatedAt().UTC().Format("2006-01-02"), strings.TrimSpace(c.GetBody()))
	}
	return b.String()
}
