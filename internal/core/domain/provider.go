package domain

// ProviderName identifies the origin system of a raw item.
// The set is closed: adding a provider means adding a constant here and
// extending Providers, so switches over ProviderName stay exhaustive.
type ProviderName string

const (
	// ProviderManual is content entered or pasted by the user.
	ProviderManual ProviderName = "manual"
	// ProviderGitHub is content fetched from GitHub.
	ProviderGitHub ProviderName = "github"
	// ProviderGoogle is content fetched from Google (e.g. Drive).
	ProviderGoogle ProviderName = "google"
	// ProviderNotion is content fetched from Notion.
	ProviderNotion ProviderName = "notion"
)

// Providers returns every known provider in declaration order.
func Providers() []ProviderName {
	return []ProviderName{ProviderManual, ProviderGitHub, ProviderGoogle, ProviderNotion}
}

// Valid reports whether p is one of the known providers.
func (p ProviderName) Valid() bool {
	switch p {
	case ProviderManual, ProviderGitHub, ProviderGoogle, ProviderNotion:
		return true
	default:
		return false
	}
}

// String returns the provider tag.
func (p ProviderName) String() string {
	return string(p)
}

// ContentKind is the MIME-style tag describing how raw content is encoded.
type ContentKind string

const (
	// MIMEPlainText is unformatted text.
	MIMEPlainText ContentKind = "text/plain"
	// MIMEMarkdown is Markdown source.
	MIMEMarkdown ContentKind = "text/markdown"
	// MIMEHTML is HTML source.
	MIMEHTML ContentKind = "text/html"
	// MIMEJSON is structured JSON.
	MIMEJSON ContentKind = "application/json"
)

// ContentKinds returns every known content kind.
func ContentKinds() []ContentKind {
	return []ContentKind{MIMEPlainText, MIMEMarkdown, MIMEHTML, MIMEJSON}
}

// Valid reports whether k is one of the known content kinds.
func (k ContentKind) Valid() bool {
	switch k {
	case MIMEPlainText, MIMEMarkdown, MIMEHTML, MIMEJSON:
		return true
	default:
		return false
	}
}
