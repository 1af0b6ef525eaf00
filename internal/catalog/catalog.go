// Package catalog holds the immutable in-memory club collection every page
// reads from. A Catalog is built once per data load and shared by reference;
// nothing mutates it afterwards, so concurrent readers need no locking.
package catalog

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/emirpasic/gods/sets/treeset"

	"github.com/pkordes/circlehub/internal/domain"
)

// Catalog is the read-only club repository.
type Catalog struct {
	clubs []domain.Club
	byKey map[string]int
	vocab []string

	// mu guards rnd; *rand.Rand is not safe for concurrent use.
	mu  sync.Mutex
	rnd *rand.Rand
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithRand sets the random source used by ListRelated when a club has no
// tags. Tests pass a seeded source to get a reproducible sample.
func WithRand(r *rand.Rand) Option {
	return func(c *Catalog) { c.rnd = r }
}

// New builds a Catalog from clubs in declaration order.
// Empty tag entries are dropped. Returns domain.ErrValidation if a club has
// an empty key or name, or two clubs share a key.
func New(clubs []domain.Club, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		clubs: make([]domain.Club, 0, len(clubs)),
		byKey: make(map[string]int, len(clubs)),
	}
	for _, o := range opts {
		o(c)
	}
	if c.rnd == nil {
		c.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	vocab := treeset.NewWithStringComparator()
	for i, club := range clubs {
		if strings.TrimSpace(club.Key) == "" {
			return nil, fmt.Errorf("catalog.New: club %d: %w: key is required", i, domain.ErrValidation)
		}
		if strings.TrimSpace(club.Name) == "" {
			return nil, fmt.Errorf("catalog.New: club %q: %w: name is required", club.Key, domain.ErrValidation)
		}
		if _, dup := c.byKey[club.Key]; dup {
			return nil, fmt.Errorf("catalog.New: %w: duplicate key %q", domain.ErrValidation, club.Key)
		}
		club.Tags = cleanTags(club.Tags)
		for _, t := range club.Tags {
			vocab.Add(t)
		}
		c.byKey[club.Key] = len(c.clubs)
		c.clubs = append(c.clubs, club)
	}

	c.vocab = make([]string, 0, vocab.Size())
	for _, v := range vocab.Values() {
		c.vocab = append(c.vocab, v.(string))
	}
	return c, nil
}

// Len returns the number of clubs.
func (c *Catalog) Len() int {
	return len(c.clubs)
}

// ListAll returns every club in declaration order.
// The returned slice is a copy; callers may reorder or truncate it.
func (c *Catalog) ListAll() []domain.Club {
	out := make([]domain.Club, len(c.clubs))
	copy(out, c.clubs)
	return out
}

// GetByKey returns the club with exactly this key.
// A missing key is a normal outcome, reported by ok == false.
func (c *Catalog) GetByKey(key string) (domain.Club, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return domain.Club{}, false
	}
	return c.clubs[i], true
}

// ListRelated returns up to limit clubs related to club, never club itself.
//
// When club has tags, related means "shares at least one tag" and results
// keep catalog order. When it has none, the result is a random sample of the
// other clubs drawn from the catalog's random source.
func (c *Catalog) ListRelated(club domain.Club, limit int) []domain.Club {
	if limit <= 0 {
		return []domain.Club{}
	}

	others := make([]domain.Club, 0, len(c.clubs))
	for _, o := range c.clubs {
		if o.Key != club.Key {
			others = append(others, o)
		}
	}

	if club.HasTags() {
		related := make([]domain.Club, 0, limit)
		for _, o := range others {
			if sharesTag(club, o) {
				related = append(related, o)
				if len(related) == limit {
					break
				}
			}
		}
		return related
	}

	c.mu.Lock()
	c.rnd.Shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })
	c.mu.Unlock()

	if len(others) > limit {
		others = others[:limit]
	}
	return others
}

// Vocabulary returns the distinct tags across all clubs, sorted.
func (c *Catalog) Vocabulary() []string {
	out := make([]string, len(c.vocab))
	copy(out, c.vocab)
	return out
}

func sharesTag(a, b domain.Club) bool {
	for _, t := range a.Tags {
		if b.HasTag(t) {
			return true
		}
	}
	return false
}

// cleanTags drops blank entries; nil when nothing is left.
func cleanTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
