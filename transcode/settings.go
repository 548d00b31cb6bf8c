// Package transcode implements the encoder pipeline: a pure, deterministic
// normalisation of a pattern against a target format's declared
// capabilities, per the fixed nine-stage order documented on Transcode.
package transcode

// ThreadChangeCommand selects which opcode the pipeline uses to represent
// a thread change.
type ThreadChangeCommand int

const (
	ThreadChangeColorChange ThreadChangeCommand = iota
	ThreadChangeNeedleSet
)

// SequinContingency selects how SEQUIN_EJECT commands are handled for
// targets lacking native sequin support.
type SequinContingency int

const (
	SequinUtilize SequinContingency = iota
	SequinJump
	SequinStitch
	SequinRemove
)

// LongStitchContingency selects how over-length STITCHes are handled.
type LongStitchContingency int

const (
	LongStitchNone LongStitchContingency = iota
	LongStitchJumpNeedle
	LongStitchSewTo
)

// TieContingency selects tie-on/tie-off behaviour at colour-block
// boundaries.
type TieContingency int

const (
	TieNone TieContingency = iota
	TieThreeSmall
)

// Settings declares a target format's capabilities to the transcoder.
// NewSettings with no options gives the permissive configuration: no
// rounding, no stitch/jump ceiling, implicit trim, COLOR_CHANGE thread
// changes, sequins passed through, SLOW/FAST kept, no long-stitch
// contingency, no tie-on/off. (The zero value differs only in dropping
// SLOW/FAST.) Under NewSettings() the transcoder still appends a terminal
// END, applies and drops MATRIX_* directives, rewrites NEEDLE_SET as
// COLOR_CHANGE, elides a TRIM directly before a COLOR_CHANGE and collapses
// consecutive TRIMs.
type Settings struct {
	MaxStitch float64 // 0 means unbounded
	MaxJump   float64 // 0 means unbounded
	FullJump  bool

	Round bool

	WritesSpeeds bool

	ThreadChangeCommand ThreadChangeCommand
	ExplicitTrim        bool

	SequinContingency     SequinContingency
	LongStitchContingency LongStitchContingency

	TieOn  TieContingency
	TieOff TieContingency
}

// Option configures a Settings value, in the teacher's functional-options
// idiom (see encoding/fasta.Opt).
type Option func(*Settings)

// NewSettings builds a Settings from the permissive identity defaults plus
// any options.
func NewSettings(opts ...Option) Settings {
	s := Settings{WritesSpeeds: true}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func WithMaxStitch(v float64) Option { return func(s *Settings) { s.MaxStitch = v } }
func WithMaxJump(v float64) Option   { return func(s *Settings) { s.MaxJump = v } }
func WithFullJump(v bool) Option     { return func(s *Settings) { s.FullJump = v } }
func WithRound(v bool) Option        { return func(s *Settings) { s.Round = v } }
func WithWritesSpeeds(v bool) Option { return func(s *Settings) { s.WritesSpeeds = v } }

func WithThreadChangeCommand(v ThreadChangeCommand) Option {
	return func(s *Settings) { s.ThreadChangeCommand = v }
}
func WithExplicitTrim(v bool) Option { return func(s *Settings) { s.ExplicitTrim = v } }
func WithSequinContingency(v SequinContingency) Option {
	return func(s *Settings) { s.SequinContingency = v }
}
func WithLongStitchContingency(v LongStitchContingency) Option {
	return func(s *Settings) { s.LongStitchContingency = v }
}
func WithTieOn(v TieContingency) Option  { return func(s *Settings) { s.TieOn = v } }
func WithTieOff(v TieContingency) Option { return func(s *Settings) { s.TieOff = v } }

// DSTSettings is the canonical EncoderSettings for the DST reference
// codec: integer coordinates, implicit trim (DST lacks a native TRIM
// opcode; trims are reconstructed by the writer's jump serpentine and the
// reader's InterpolateTrims pass), COLOR_CHANGE thread changes, sequins
// passed through (the DST writer emits SEQUIN_MODE records and writes
// SEQUIN_EJECT as a jump-class record), no long-stitch contingency (DST's ternary encoding caps
// magnitude at 121 anyway — exceeding that is an Encoding error, not a
// silent contingency).
func DSTSettings() Settings {
	return NewSettings(
		WithRound(true),
		WithExplicitTrim(false),
		WithThreadChangeCommand(ThreadChangeColorChange),
		WithSequinContingency(SequinUtilize),
		WithWritesSpeeds(false),
	)
}

// HUSSettings is the canonical EncoderSettings for the HUS reference
// codec.
func HUSSettings() Settings {
	return NewSettings(
		WithRound(true),
		WithExplicitTrim(true),
		WithThreadChangeCommand(ThreadChangeColorChange),
		WithSequinContingency(SequinUtilize),
		WithWritesSpeeds(false),
	)
}

// JSONSettings is the canonical EncoderSettings for the JSON interchange
// codec: the lossless format, so every contingency is the most permissive
// option available.
func JSONSettings() Settings {
	return NewSettings(
		WithThreadChangeCommand(ThreadChangeColorChange),
		WithSequinContingency(SequinUtilize),
		WithWritesSpeeds(true),
	)
}
