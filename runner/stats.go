package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const signerTrailer = "Signed-off-by"

type Stats struct {
	Commits int64
	Counts  map[string][]*statCount
}

func (s *Stats) Add(bucket, name string, n int64) {
	counts := s.Counts[bucket]
	count, found := s.findCount(name, counts)
	if !found {
		counts = append(counts, count)
	}
	count.Add(n)

	s.Counts[bucket] = counts
}

func (s *Stats) Get(bucket, name string) int64 {
	count, found := s.findCount(name, s.Counts[bucket])
	if !found {
		return 0
	}
	return count.n
}

func (s *Stats) findCount(name string, counts []*statCount) (*statCount, bool) {
	for _, c := range counts {
		if c.label == name {
			return c, true
		}
	}
	return &statCount{label: name}, false
}

func (s *Stats) sortedBuckets() []string {
	buckets := make([]string, 0, len(s.Counts))
	for name := range s.Counts {
		buckets = append(buckets, name)
	}
	sort.Strings(buckets)
	return buckets
}

type statCount struct {
	label string
	n     int64
}

func (c *statCount) Add(n int64) {
	c.n += n
}

func (s *Stats) TextSummary(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(fmt.Sprintf("%d commits\n\n", s.Commits))

	for _, name := range s.sortedBuckets() {
		counts := s.Counts[name]
		sort.SliceStable(counts, func(i, j int) bool {
			return counts[i].n > counts[j].n
		})
		bw.WriteString(fmt.Sprintf("%s:\n", toTitle(name)))
		for _, count := range counts {
			label := count.label
			if label == "" {
				label = "n/a"
			}
			bw.WriteString(fmt.Sprintf("  %-40s\t%d\n", label, count.n))
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// Stats counts policy results and signers for commits since the given ref,
// or the last release if since is empty.
func (r *Runner) Stats(ctx context.Context, since string) (*Stats, error) {
	commits, err := r.analyzer.ReadCommitsSince(ctx, since)
	if err != nil {
		return nil, err
	}
	stats := &Stats{
		Commits: int64(len(commits)),
		Counts:  make(map[string][]*statCount),
	}

	for _, c := range commits {
		for _, rule := range r.rules {
			label := "fail"
			if ok, _ := rule.Check(c); ok {
				label = "pass"
			}
			stats.Add("policy "+rule.Name, label, 1)
		}

		signers := c.TrailerValues(signerTrailer)
		if len(signers) == 0 {
			stats.Add("signer", "", 1)
		}
		for _, signer := range signers {
			stats.Add("signer", signer, 1)
		}
	}
	return stats, nil
}

var nonAlphaRE = regexp.MustCompile(`[^A-Za-z]`)

func toTitle(s string) string {
	s = nonAlphaRE.ReplaceAllLiteralString(s, " ")
	return cases.Title(language.English).String(s)
}
