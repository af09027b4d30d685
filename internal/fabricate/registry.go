// Package fabricate generates synthetic records from a schema that maps
// field names to dotted generator paths such as "person.fullName".
package fabricate

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// ErrUnknownGenerator is returned when a schema path names no generator
var ErrUnknownGenerator = errors.New("unknown generator")

// Generator produces one value
type Generator func(f *gofakeit.Faker) any

// Registry resolves generator paths to gofakeit calls. Faker sources are
// not safe for concurrent use, so every draw holds mu.
type Registry struct {
	mu         sync.Mutex
	faker      *gofakeit.Faker
	generators map[string]Generator
}

// NewRegistry creates a registry seeded from the clock. A non-zero seed
// makes output reproducible.
func NewRegistry(seed uint64) *Registry {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Registry{
		faker:      gofakeit.New(seed),
		generators: builtinGenerators(),
	}
}

// Lookup resolves a path. Matching ignores case so "person.fullname" and
// "person.fullName" are the same generator.
func (r *Registry) Lookup(path string) (Generator, error) {
	key := strings.ToLower(strings.TrimSpace(path))
	if g, ok := r.generators[key]; ok {
		return g, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, path)
}

// Paths lists every registered path in sorted order
func (r *Registry) Paths() []string {
	paths := make([]string, 0, len(r.generators))
	for p := range r.generators {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// draw runs g under the registry lock
func (r *Registry) draw(g Generator) any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return g(r.faker)
}

func builtinGenerators() map[string]Generator {
	m := map[string]Generator{
		// person
		"person.fullName":  func(f *gofakeit.Faker) any { return f.Name() },
		"person.firstName": func(f *gofakeit.Faker) any { return f.FirstName() },
		"person.lastName":  func(f *gofakeit.Faker) any { return f.LastName() },
		"person.sex":       func(f *gofakeit.Faker) any { return f.Gender() },
		"person.jobTitle":  func(f *gofakeit.Faker) any { return f.JobTitle() },

		// internet
		"internet.email":      func(f *gofakeit.Faker) any { return f.Email() },
		"internet.userName":   func(f *gofakeit.Faker) any { return f.Username() },
		"internet.url":        func(f *gofakeit.Faker) any { return f.URL() },
		"internet.ip":         func(f *gofakeit.Faker) any { return f.IPv4Address() },
		"internet.ipv6":       func(f *gofakeit.Faker) any { return f.IPv6Address() },
		"internet.userAgent":  func(f *gofakeit.Faker) any { return f.UserAgent() },
		"internet.domainName": func(f *gofakeit.Faker) any { return f.DomainName() },
		"internet.emoji":      func(f *gofakeit.Faker) any { return f.Emoji() },

		"phone.number": func(f *gofakeit.Faker) any { return f.Phone() },

		// company
		"company.name":       func(f *gofakeit.Faker) any { return f.Company() },
		"company.buzzPhrase": func(f *gofakeit.Faker) any { return f.BS() },
		"company.buzzNoun":   func(f *gofakeit.Faker) any { return f.BuzzWord() },

		// location
		"location.city":          func(f *gofakeit.Faker) any { return f.City() },
		"location.country":       func(f *gofakeit.Faker) any { return f.Country() },
		"location.state":         func(f *gofakeit.Faker) any { return f.State() },
		"location.streetAddress": func(f *gofakeit.Faker) any { return f.Street() },
		"location.zipCode":       func(f *gofakeit.Faker) any { return f.Zip() },
		"location.latitude":      func(f *gofakeit.Faker) any { return f.Latitude() },
		"location.longitude":     func(f *gofakeit.Faker) any { return f.Longitude() },

		"string.uuid": func(f *gofakeit.Faker) any { return f.UUID() },

		// lorem
		"lorem.word": func(f *gofakeit.Faker) any { return f.Word() },
		"lorem.sentence": func(f *gofakeit.Faker) any {
			words := make([]string, 6+f.IntN(6))
			for i := range words {
				words[i] = f.Word()
			}
			s := strings.Join(words, " ")
			return strings.ToUpper(s[:1]) + s[1:] + "."
		},

		"hacker.phrase": func(f *gofakeit.Faker) any { return f.HackerPhrase() },
		"hacker.noun":   func(f *gofakeit.Faker) any { return f.HackerNoun() },

		"color.human": func(f *gofakeit.Faker) any { return f.Color() },
		"color.rgb":   func(f *gofakeit.Faker) any { return f.HexColor() },

		// date values render as RFC 3339 like JSON dates do
		"date.past":   func(f *gofakeit.Faker) any { return f.PastDate().UTC().Format(time.RFC3339) },
		"date.future": func(f *gofakeit.Faker) any { return f.FutureDate().UTC().Format(time.RFC3339) },
		"date.recent": func(f *gofakeit.Faker) any {
			return time.Now().Add(-time.Duration(f.IntN(86400)) * time.Second).UTC().Format(time.RFC3339)
		},

		"datatype.boolean": func(f *gofakeit.Faker) any { return f.Bool() },
		"number.int":       func(f *gofakeit.Faker) any { return f.IntN(100000) },

		"commerce.productName": func(f *gofakeit.Faker) any { return f.ProductName() },
		"commerce.price": func(f *gofakeit.Faker) any {
			return fmt.Sprintf("%.2f", f.Price(1, 1000))
		},

		"animal.type": func(f *gofakeit.Faker) any { return f.AnimalType() },
	}

	out := make(map[string]Generator, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = v
	}
	return out
}
