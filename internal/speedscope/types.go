package speedscope

// UnknownFrameName is used for frame records that carry no name.
const UnknownFrameName = "unknown"

// Frame is a single entry of the shared frame table
type Frame struct {
	Index int
	Name  string
	File  string
	Line  int
	Col   int
}

// Sample is one captured call stack as indexes into the frame table,
// ordered from root to leaf.
type Sample []int

// Leaf returns the frame index of the innermost frame and false for an empty stack.
func (s Sample) Leaf() (int, bool) {
	if len(s) == 0 {
		return 0, false
	}
	return s[len(s)-1], true
}

// Profile is a named collection of samples sharing the file's frame table
type Profile struct {
	Type    string
	Name    string
	Unit    string
	Samples []Sample
	Weights []float64
}

// File holds everything parsed from a single speedscope document
type File struct {
	Name     string
	Exporter string
	Frames   []Frame
	Profiles []Profile
}

// FrameName returns the display name of the frame at idx.
func (f *File) FrameName(idx int) string {
	if idx < 0 || idx >= len(f.Frames) {
		return UnknownFrameName
	}
	return f.Frames[idx].Name
}

// NumSamples returns the number of samples across all profiles, empty stacks included.
func (f *File) NumSamples() int {
	n := 0
	for _, p := range f.Profiles {
		n += len(p.Samples)
	}
	return n
}

// The raw document as it appears on disk.
// See https://github.com/jlfwong/speedscope/blob/main/src/lib/file-format-spec.ts
type document struct {
	Schema             string       `json:"$schema"`
	Shared             sharedData   `json:"shared"`
	Profiles           []rawProfile `json:"profiles"`
	Name               string       `json:"name"`
	ActiveProfileIndex int          `json:"activeProfileIndex"`
	Exporter           string       `json:"exporter"`
}

type sharedData struct {
	Frames []rawFrame `json:"frames"`
}

type rawFrame struct {
	Name *string `json:"name"`
	File string  `json:"file"`
	Line int     `json:"line"`
	Col  int     `json:"col"`
}

type rawProfile struct {
	Type    string    `json:"type"`
	Name    string    `json:"name"`
	Unit    string    `json:"unit"`
	Samples [][]int   `json:"samples"`
	Weights []float64 `json:"weights"`
}
