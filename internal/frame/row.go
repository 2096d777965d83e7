package frame

// Row is a writable output scanline covering columns [X, R) for a fixed set of
// channels.
//
// Storage for each channel is indexed relative to X: Writable(ch)[i] holds the
// sample for column X+i.
type Row struct {
	X int // First column (inclusive)
	R int // Last column (exclusive)

	channels []Channel
	data     [numChannels][]float32
}

// NewRow allocates a zeroed row for columns [x, r) and the given channels.
// Duplicate or unknown channels are ignored. If r < x the row is empty.
func NewRow(x, r int, channels ...Channel) *Row {
	if r < x {
		r = x
	}
	row := &Row{X: x, R: r}
	for _, ch := range channels {
		if !ch.valid() || row.data[ch] != nil {
			continue
		}
		row.data[ch] = make([]float32, r-x)
		row.channels = append(row.channels, ch)
	}
	return row
}

// Width returns the number of columns in the row.
func (row *Row) Width() int {
	return row.R - row.X
}

// Channels returns the channels carried by the row in the order they were
// requested.
func (row *Row) Channels() []Channel {
	return row.channels
}

// Has reports whether the row carries channel ch.
func (row *Row) Has(ch Channel) bool {
	return ch.valid() && row.data[ch] != nil
}

// Writable returns the mutable samples of channel ch, or nil if the row does not
// carry it.
func (row *Row) Writable(ch Channel) []float32 {
	if !ch.valid() {
		return nil
	}
	return row.data[ch]
}

// At returns the sample of channel ch at absolute column x. Columns outside
// [X, R) and missing channels read as 0.
func (row *Row) At(ch Channel, x int) float32 {
	if !row.Has(ch) || x < row.X || x >= row.R {
		return 0
	}
	return row.data[ch][x-row.X]
}

// Fill sets every sample of every carried channel to v.
func (row *Row) Fill(v float32) {
	for _, ch := range row.channels {
		buf := row.data[ch]
		for i := range buf {
			buf[i] = v
		}
	}
}
