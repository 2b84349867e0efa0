package analysis

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/spacesedan/subreddit-insights/internal/models"
)

const DefaultMaxWords = 200

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_][\p{L}\p{N}_']*`)

// TitleBlob joins every title with single spaces.
func TitleBlob(posts []models.Post) string {
	titles := make([]string, len(posts))
	for i, post := range posts {
		titles[i] = post.Title
	}
	return strings.Join(titles, " ")
}

// Frequencies builds the ranked word table for the post titles along with the
// normalized weights the word cloud is drawn from.
//
// Absolute frequency is the normalized weight times the number of raw whitespace
// tokens in the blob, stop words included, so it under-reports true counts. Existing
// reports depend on these numbers; keep the denominator.
func Frequencies(posts []models.Post) ([]models.WordFrequencyEntry, []models.WeightedWord) {
	blob := TitleBlob(posts)
	totalWords := len(strings.Fields(blob))

	weights := NormalizedFrequencies(blob, DefaultMaxWords)

	entries := make([]models.WordFrequencyEntry, len(weights))
	for i, w := range weights {
		entries[i] = models.WordFrequencyEntry{
			Word:              w.Word,
			AbsoluteFrequency: int(math.Round(w.Weight * float64(totalWords))),
		}
	}
	RankEntries(entries)

	return entries, weights
}

// RankEntries sorts by descending absolute frequency, keeping the incoming order for
// ties, and assigns competition ranks: equal frequencies share a rank and the next
// distinct frequency skips ahead (1, 2, 2, 4).
func RankEntries(entries []models.WordFrequencyEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AbsoluteFrequency > entries[j].AbsoluteFrequency
	})

	for i := range entries {
		if i > 0 && entries[i].AbsoluteFrequency == entries[i-1].AbsoluteFrequency {
			entries[i].Rank = entries[i-1].Rank
			continue
		}
		entries[i].Rank = i + 1
	}
}

// NormalizedFrequencies keeps at most maxWords words, ordered by descending count with
// first appearance breaking ties, and scales counts so the most frequent word is 1.
func NormalizedFrequencies(text string, maxWords int) []models.WeightedWord {
	counts := countWords(text)
	if len(counts) == 0 {
		return nil
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})
	if maxWords > 0 && len(counts) > maxWords {
		counts = counts[:maxWords]
	}

	top := float64(counts[0].count)
	weights := make([]models.WeightedWord, len(counts))
	for i, c := range counts {
		weights[i] = models.WeightedWord{Word: c.word, Weight: float64(c.count) / top}
	}
	return weights
}

type wordCount struct {
	word  string
	count int
}

// caseForms tracks the surface spellings of one lowercase word in first-seen order.
type caseForms struct {
	order  []string
	counts map[string]int
}

func (c *caseForms) add(form string, n int) {
	if _, ok := c.counts[form]; !ok {
		c.order = append(c.order, form)
	}
	c.counts[form] += n
}

func (c *caseForms) total() int {
	sum := 0
	for _, n := range c.counts {
		sum += n
	}
	return sum
}

// display is the most frequent spelling; the earliest wins a tie.
func (c *caseForms) display() string {
	best := c.order[0]
	for _, form := range c.order[1:] {
		if c.counts[form] > c.counts[best] {
			best = form
		}
	}
	return best
}

// countWords tokenizes text the way the word-cloud generator does: possessive 's and
// trailing apostrophes are dropped, numbers and stop words are removed, counting is
// case-insensitive, and a plural folds into its singular when both occur. Results are
// in order of first appearance.
func countWords(text string) []wordCount {
	byLower := make(map[string]*caseForms)
	var order []string

	for _, token := range tokenPattern.FindAllString(text, -1) {
		if strings.HasSuffix(strings.ToLower(token), "'s") {
			token = token[:len(token)-2]
		}
		token = strings.TrimRight(token, "'")
		if token == "" || isNumber(token) {
			continue
		}

		lower := strings.ToLower(token)
		if IsStopWord(lower) {
			continue
		}

		forms, ok := byLower[lower]
		if !ok {
			forms = &caseForms{counts: make(map[string]int)}
			byLower[lower] = forms
			order = append(order, lower)
		}
		forms.add(token, 1)
	}

	for _, lower := range order {
		if !strings.HasSuffix(lower, "s") || strings.HasSuffix(lower, "ss") {
			continue
		}
		singular, ok := byLower[strings.TrimSuffix(lower, "s")]
		if !ok {
			continue
		}
		plural := byLower[lower]
		for _, form := range plural.order {
			singular.add(form[:len(form)-1], plural.counts[form])
		}
		delete(byLower, lower)
	}

	counts := make([]wordCount, 0, len(byLower))
	for _, lower := range order {
		forms, ok := byLower[lower]
		if !ok {
			continue
		}
		counts = append(counts, wordCount{word: forms.display(), count: forms.total()})
	}
	return counts
}

func isNumber(token string) bool {
	for _, r := range token {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
