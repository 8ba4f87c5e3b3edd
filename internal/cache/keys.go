package cache

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
	"strings"

	"github.com/saandeep/portfolio-api/internal/store"
)

// Fixed keys for single-shape aggregates.
const (
	KeySkillsAll            = "skills:all"
	KeyAchievementsAll      = "achievements:all"
	KeyTestimonialsApproved = "testimonials:approved"
	KeyAnalyticsDashboard   = "analytics:dashboard"
	KeyStatsOverview        = "stats:overview"
)

// Domain prefixes; a mutation in a domain invalidates its whole prefix.
const (
	PrefixProjects     = "projects:"
	PrefixBlogs        = "blogs:"
	PrefixSkills       = "skills:"
	PrefixAchievements = "achievements:"
	PrefixTestimonials = "testimonials:"
	PrefixStats        = "stats:"
	PrefixAnalytics    = "analytics:"
)

// ListKey derives a deterministic cache key for a listing query: the domain
// prefix plus a stable hash of the query's filters, ordering, and limit.
// Identical queries always map to the same key, so every route reading the
// same listing shares one entry and one invalidation path.
func ListKey(domain string, q store.Query) string {
	filters := q.Filters()
	parts := make([]string, 0, len(filters)+2)
	for _, f := range filters {
		parts = append(parts, f.Field+"="+fmt.Sprint(f.Value))
	}
	sort.Strings(parts)

	if field := q.OrderField(); field != "" {
		parts = append(parts, "order="+field+" "+string(q.OrderDirection()))
	}
	if limit := q.LimitValue(); limit > 0 {
		parts = append(parts, "limit="+strconv.Itoa(limit))
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.Join(parts, "|")))

	return domain + ":" + strconv.FormatUint(h.Sum64(), 36)
}
