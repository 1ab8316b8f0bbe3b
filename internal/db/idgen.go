package db

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/Vantage-Outdoor-LLC/argus/internal/model"
)

// Record ids are human-readable and date-scoped: DS-<ddmmyy>-NNN for
// displays, AD-<ddmmyy>-NNN for campaigns, GP-NNN for root groups and
// S<level>GP-<parent numbers>-NNN for subgroups. The numeric suffix is the
// smallest free 3-digit number under the prefix, so deleted ids get reused.

func formatDateForID(t time.Time) string {
	return t.Format("020106")
}

// smallestFreeSuffix picks the lowest positive integer not already taken by
// one of the existing ids under the prefix.
func smallestFreeSuffix(existing []string, prefix string) string {
	taken := make(map[int]bool)
	for _, id := range existing {
		if !strings.HasPrefix(id, prefix+"-") {
			continue
		}
		parts := strings.Split(id, "-")
		if n, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			taken[n] = true
		}
	}
	n := 1
	for taken[n] {
		n++
	}
	return fmt.Sprintf("%s-%03d", prefix, n)
}

func (s *pgStore) idsWithPrefix(table, prefix string) ([]string, error) {
	ids := []string{}
	err := s.db.Select(&ids,
		`SELECT id FROM `+pq.QuoteIdentifier(table)+` WHERE id LIKE $1`,
		prefix+"-%")
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("idsWithPrefix failed")
		return nil, err
	}
	return ids, nil
}

func (s *pgStore) NextDisplayID(installed time.Time) (string, error) {
	prefix := "DS-" + formatDateForID(installed)
	existing, err := s.idsWithPrefix("displays", prefix)
	if err != nil {
		return "", err
	}
	return smallestFreeSuffix(existing, prefix), nil
}

func (s *pgStore) NextCampaignID(start time.Time) (string, error) {
	prefix := "AD-" + formatDateForID(start)
	existing, err := s.idsWithPrefix("campaigns", prefix)
	if err != nil {
		return "", err
	}
	return smallestFreeSuffix(existing, prefix), nil
}

// NextGroupID derives the id of a new group from its siblings in the forest
// being saved. parent is nil for a root group.
func NextGroupID(siblings []model.Group, parent *model.Group) string {
	existing := make([]string, 0, len(siblings))
	for _, g := range siblings {
		existing = append(existing, g.ID)
	}

	if parent == nil {
		return smallestFreeSuffix(existing, "GP")
	}

	var prefix string
	switch {
	case strings.HasPrefix(parent.ID, "GP-"):
		prefix = "S1GP-" + strings.TrimPrefix(parent.ID, "GP-")
	case strings.HasPrefix(parent.ID, "S") && strings.Contains(parent.ID, "GP-"):
		// S<n>GP-a-...-z becomes S<n+1>GP-a-...-z
		head, tail, _ := strings.Cut(parent.ID, "GP-")
		level, err := strconv.Atoi(strings.TrimPrefix(head, "S"))
		if err != nil {
			return smallestFreeSuffix(existing, "Sub-"+parent.ID)
		}
		prefix = fmt.Sprintf("S%dGP-%s", level+1, tail)
	default:
		prefix = "Sub-" + parent.ID
	}
	return smallestFreeSuffix(existing, prefix)
}
