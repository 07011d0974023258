package export

import (
	"sort"

	"github.com/seqtools/edl-agent/internal/timeline"
)

// Entry pairs an exportable element with its 1-based source index. The
// index is the element's position in the collected set, before any
// per-track sorting, and is the cross-reference key both formats use to
// link a track row back to the source table.
type Entry struct {
	Source  int
	Element *timeline.Element
}

// Track is the ordered contents of one populated channel.
type Track []Entry

// BuildTracks groups the collected elements by channel and sorts each
// channel's contents by start frame (stable, so ties keep collection
// order). Channels with no elements produce no Track: the result is
// dense over populated channels, and renderers must count their own
// emission index instead of using the source channel number.
func BuildTracks(elements []*timeline.Element) []Track {
	maxChannel := 0
	for _, el := range elements {
		if ch := clampChannel(el.Channel); ch > maxChannel {
			maxChannel = ch
		}
	}

	buckets := make([]Track, maxChannel)
	for i, el := range elements {
		ch := clampChannel(el.Channel)
		buckets[ch-1] = append(buckets[ch-1], Entry{Source: i + 1, Element: el})
	}

	var tracks []Track
	for _, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].Element.FinalStart < bucket[j].Element.FinalStart
		})
		tracks = append(tracks, bucket)
	}
	return tracks
}

// clampChannel folds out-of-range channel numbers onto channel 1; the
// host editor never produces them, but imported data might.
func clampChannel(ch int) int {
	if ch < 1 {
		return 1
	}
	return ch
}
