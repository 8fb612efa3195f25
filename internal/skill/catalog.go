// Package skill holds the recognized skill catalog and the normalization of
// the skills form field.
package skill

var catalog = []string{
	"Java", "Python", "C++", "C#", "JavaScript", "TypeScript", "React",
	"Angular", "Vue.js", "Node.js", "Express.js", "MongoDB", "SQL", "MySQL",
	"PostgreSQL", "AWS", "Azure", "Google Cloud", "Docker", "Kubernetes",
	"Machine Learning", "Data Science", "HTML", "CSS", "SASS", "Bootstrap",
	"Tailwind CSS", "Git", "REST API", "GraphQL",
}

var catalogIndex = func() map[string]struct{} {
	m := make(map[string]struct{}, len(catalog))
	for _, s := range catalog {
		m[s] = struct{}{}
	}
	return m
}()

// Catalog returns a copy of the recognized skills in display order.
func Catalog() []string {
	out := make([]string, len(catalog))
	copy(out, catalog)
	return out
}

// InCatalog reports whether s is a recognized skill (exact match).
func InCatalog(s string) bool {
	_, ok := catalogIndex[s]
	return ok
}
