package ranking

// embeddingSet identifies one of the four per-job embedding sets.
type embeddingSet int

const (
	// setComposite embeds title + " " + description.
	setComposite embeddingSet = iota
	// setTitle embeds the title alone.
	setTitle
	// setLocation embeds the location alone.
	setLocation
	// setLanguage embeds the language-tagged composite.
	setLanguage
)

// setFor maps a category name to the embedding set its preference is
// scored against. The mapping is total: any category not named here,
// "skills" and "experience" included, falls back to the composite set.
func setFor(category string) embeddingSet {
	switch category {
	case "title":
		return setTitle
	case "location":
		return setLocation
	case "language":
		return setLanguage
	default:
		return setComposite
	}
}
