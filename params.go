// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo (options.go / level_params.go layout)

package zstd

// Strategy selects the match-finder kernel a compression level uses (spec
// §3 "Strategy"). Ordered from cheapest to most thorough, matching the
// ordering a cParams table indexes into.
type Strategy int

const (
	StrategyFast Strategy = iota
	StrategyDoubleFast
	StrategyGreedy
	StrategyLazy
	StrategyLazy2
	StrategyBtLazy2
	StrategyBtOpt
	StrategyBtUltra
)

func (s Strategy) String() string {
	switch s {
	case StrategyFast:
		return "fast"
	case StrategyDoubleFast:
		return "double_fast"
	case StrategyGreedy:
		return "greedy"
	case StrategyLazy:
		return "lazy"
	case StrategyLazy2:
		return "lazy2"
	case StrategyBtLazy2:
		return "btlazy2"
	case StrategyBtOpt:
		return "btopt"
	case StrategyBtUltra:
		return "btultra"
	default:
		return "unknown"
	}
}

// cParams bundles the match-finder tuning knobs for one compression level,
// matching spec §3 MatchState's configuration fields exactly.
type cParams struct {
	windowLog   uint // log2 of the maximum back-reference distance
	hashLog     uint // log2 of the primary hash table size
	chainLog    uint // log2 of the hash-chain / binary-tree table size
	searchLog   uint // log2 of the maximum chain/tree depth searched
	minMatch    uint // per-level minimum match length; the parse loops do not read it
	targetLen   uint // "nice length": stop searching once a match is this long
	strategy    Strategy
}

// DefaultCompressionLevel is used when EncoderParams.Level is zero or no
// EncoderParams is given.
const DefaultCompressionLevel = 3

// MaxCompressionLevel is the highest level accepted by EncoderParams;
// levels above it clamp down, mirroring the teacher's Compress level
// clamping in compress.go.
const MaxCompressionLevel = 19

// levelTable holds one cParams row per compression level 1..19.
// levelParams maps levels below 1 to level 1 (fast), but EncoderParams
// turns Level 0 into DefaultCompressionLevel before that mapping. Rows are hand-tuned analogues of the
// upstream 36-row, fast/slow-input table spec §3 describes; this
// reimplementation collapses the fast/slow-input split spec.md mentions
// into a single row per level, which is sufficient for format compliance
// (cparams only affect ratio/speed, never wire semantics).
var levelTable = [...]cParams{
	{windowLog: 19, hashLog: 12, chainLog: 0, searchLog: 1, minMatch: 5, targetLen: 8, strategy: StrategyFast},        // 1
	{windowLog: 19, hashLog: 13, chainLog: 14, searchLog: 1, minMatch: 5, targetLen: 8, strategy: StrategyDoubleFast}, // 2
	{windowLog: 19, hashLog: 15, chainLog: 16, searchLog: 2, minMatch: 5, targetLen: 16, strategy: StrategyGreedy},    // 3
	{windowLog: 20, hashLog: 15, chainLog: 17, searchLog: 3, minMatch: 4, targetLen: 16, strategy: StrategyGreedy},    // 4
	{windowLog: 20, hashLog: 16, chainLog: 17, searchLog: 4, minMatch: 4, targetLen: 16, strategy: StrategyLazy},      // 5
	{windowLog: 21, hashLog: 16, chainLog: 18, searchLog: 4, minMatch: 4, targetLen: 24, strategy: StrategyLazy},      // 6
	{windowLog: 21, hashLog: 17, chainLog: 18, searchLog: 5, minMatch: 4, targetLen: 32, strategy: StrategyLazy2},     // 7
	{windowLog: 21, hashLog: 17, chainLog: 19, searchLog: 6, minMatch: 4, targetLen: 32, strategy: StrategyLazy2},     // 8
	{windowLog: 22, hashLog: 17, chainLog: 20, searchLog: 6, minMatch: 4, targetLen: 48, strategy: StrategyLazy2},     // 9
	{windowLog: 22, hashLog: 18, chainLog: 21, searchLog: 7, minMatch: 4, targetLen: 64, strategy: StrategyLazy2},     // 10
	{windowLog: 22, hashLog: 18, chainLog: 22, searchLog: 8, minMatch: 4, targetLen: 64, strategy: StrategyBtLazy2},   // 11
	{windowLog: 22, hashLog: 18, chainLog: 23, searchLog: 9, minMatch: 4, targetLen: 96, strategy: StrategyBtLazy2},   // 12
	{windowLog: 22, hashLog: 19, chainLog: 23, searchLog: 9, minMatch: 4, targetLen: 128, strategy: StrategyBtOpt},    // 13
	{windowLog: 23, hashLog: 19, chainLog: 23, searchLog: 10, minMatch: 4, targetLen: 128, strategy: StrategyBtOpt},   // 14
	{windowLog: 23, hashLog: 20, chainLog: 23, searchLog: 11, minMatch: 4, targetLen: 160, strategy: StrategyBtOpt},   // 15
	{windowLog: 23, hashLog: 20, chainLog: 24, searchLog: 12, minMatch: 4, targetLen: 192, strategy: StrategyBtUltra}, // 16
	{windowLog: 24, hashLog: 21, chainLog: 24, searchLog: 13, minMatch: 4, targetLen: 256, strategy: StrategyBtUltra}, // 17
	{windowLog: 24, hashLog: 22, chainLog: 24, searchLog: 14, minMatch: 3, targetLen: 384, strategy: StrategyBtUltra}, // 18
	{windowLog: 24, hashLog: 22, chainLog: 25, searchLog: 15, minMatch: 3, targetLen: 999, strategy: StrategyBtUltra}, // 19
}

// levelParams returns the cParams row for level, clamping level into
// [1, MaxCompressionLevel] first, matching the teacher's clamping
// convention (Compress in compress.go).
func levelParams(level int) cParams {
	level = max(level, 1)
	level = min(level, MaxCompressionLevel)
	return levelTable[level-1]
}

// EncoderParams configures frame encoding.
type EncoderParams struct {
	// Level selects the cParams row (see levelParams); 0 means
	// DefaultCompressionLevel.
	Level int
	// WindowLog overrides the level's window_log when non-zero.
	WindowLog uint
	// ContentSize, when positive, is carried in the frame header so decoders
	// can preallocate; zero or a negative value means "unknown".
	ContentSize int64
	// Checksum enables a trailing xxHash64-derived content checksum.
	Checksum bool
	// SingleSegment, when set and ContentSize is known, omits the window
	// descriptor (spec §4.9 step 2).
	SingleSegment bool
	// Dictionary, if non-nil, seeds the window and rep state from a
	// Dictionary (see dict.go) and transmits its ID in the frame header.
	Dictionary *Dictionary
	// EnableLongDistanceMatching turns on the optional pre-pass described in
	// spec §9 / SPEC_FULL.md (off by default: format compliance does not
	// require it).
	EnableLongDistanceMatching bool
}

func (p *EncoderParams) level() int {
	if p == nil || p.Level == 0 {
		return DefaultCompressionLevel
	}
	return p.Level
}

func (p *EncoderParams) cparams() cParams {
	cp := levelParams(p.level())
	if p != nil && p.WindowLog != 0 {
		cp.windowLog = p.WindowLog
	}
	if cp.windowLog < minWindowLog {
		cp.windowLog = minWindowLog
	}
	if cp.windowLog > maxWindowLog {
		cp.windowLog = maxWindowLog
	}
	return cp
}

// DecoderParams configures frame decoding.
type DecoderParams struct {
	// MaxWindowLog caps the window_log a decoder will accept; frames
	// demanding a larger window fail with ErrFrameParameterWindowTooLarge.
	// Zero means maxWindowLog (the format ceiling).
	MaxWindowLog uint
	// Dictionary, if non-nil, is used to resolve frames that reference a
	// dictionary ID, and to seed the window/rep state for dictionary-less
	// frames that nonetheless expect one (see dict.go).
	Dictionary *Dictionary
}

func (p *DecoderParams) maxWindowLog() uint {
	if p == nil || p.MaxWindowLog == 0 {
		return maxWindowLog
	}
	return p.MaxWindowLog
}
