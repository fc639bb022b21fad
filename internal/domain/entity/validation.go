package entity

// Validate checks the fields an article must carry to be stored.
// Title and URL are required; every other field is optional.
func (a *Article) Validate() error {
	if a.Title == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if a.URL == "" {
		return &ValidationError{Field: "url", Message: "is required"}
	}
	return nil
}
