// Package commit contains code for reading, parsing and checking commits.
package commit

import (
	"regexp"
	"strings"

	"github.com/jeffrom/signoff/model"
)

const scissors = "------------------------ >8 ------------------------"

type ParseOptions struct {
	// CommentChar starts lines that are dropped from the message. Empty keeps
	// every line.
	CommentChar string
}

var (
	trailerRE    = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9-]*):\s*(.*)$`)
	cherryPickRE = regexp.MustCompile(`^\(cherry picked from commit ([^)\s]+)\)$`)
)

// Parse splits a raw commit message into subject, body and trailers.
func Parse(raw string, opts ParseOptions) *model.Commit {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	lines := strings.Split(raw, "\n")

	var cleaned []string
	for _, line := range lines {
		if opts.CommentChar != "" && strings.HasPrefix(line, opts.CommentChar) {
			if strings.TrimSpace(strings.TrimPrefix(line, opts.CommentChar)) == scissors {
				break
			}
			continue
		}
		cleaned = append(cleaned, line)
	}
	cleaned = trimBlank(cleaned)

	c := &model.Commit{Raw: raw}
	if len(cleaned) == 0 {
		return c
	}
	c.Subject = strings.TrimRight(cleaned[0], " \t")

	bodyLines := trimBlank(cleaned[1:])
	c.Body = strings.Join(bodyLines, "\n")
	c.Trailers, c.CherryPicks = parseTrailers(bodyLines)
	return c
}

func trimBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func parseTrailers(lines []string) ([]model.Trailer, []string) {
	var picks []string
	for _, line := range lines {
		if m := cherryPickRE.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			picks = append(picks, m[1])
		}
	}

	paras := paragraphs(lines)
	for i := len(paras) - 1; i >= 0; i-- {
		para := paras[i]
		if onlyCherryPicks(para) {
			continue
		}

		var trailers []model.Trailer
		for _, line := range para {
			if isCherryPick(line) {
				continue
			}
			m := trailerRE.FindStringSubmatch(line)
			if m == nil {
				return nil, picks
			}
			trailers = append(trailers, model.Trailer{Key: m[1], Value: strings.TrimSpace(m[2])})
		}
		return trailers, picks
	}
	return nil, picks
}

func paragraphs(lines []string) [][]string {
	var paras [][]string
	var curr []string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if len(curr) > 0 {
				paras = append(paras, curr)
				curr = nil
			}
			continue
		}
		curr = append(curr, line)
	}
	if len(curr) > 0 {
		paras = append(paras, curr)
	}
	return paras
}

func isCherryPick(line string) bool {
	return cherryPickRE.MatchString(strings.TrimSpace(line))
}

func onlyCherryPicks(lines []string) bool {
	for _, line := range lines {
		if !isCherryPick(line) {
			return false
		}
	}
	return true
}
