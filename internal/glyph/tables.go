package glyph

// Names of the built-in tables.
const (
	PatchedName = "patched"
	NativeName  = "native"
)

// Context sensitive glyph codes.
const (
	QuoteOpen      Code = 0x8167
	QuoteClose     Code = 0x8168
	AccentI        Code = 0x82BC
	AccentIShifted Code = 0x8394
)

// shiftJISRanges are the double byte rows passed through the Shift-JIS
// charset: the symbol, alphanumeric, kana and cyrillic rows and the kanji
// rows. Rows 0x85 and 0x86 are unused by the font.
var shiftJISRanges = []Range{
	{First: 0x8140, Last: 0x84FC},
	{First: 0x8740, Last: 0x9FFC},
}

// punctuation is shared by both fonts.
var punctuation = []struct {
	char   rune
	code   Code
	decode bool // code decodes back to char
}{
	{' ', 0x8140, true},
	{',', 0x8143, true},
	{'.', 0x8144, true},
	{':', 0x8146, true},
	{';', 0x8147, true},
	{'?', 0x8148, true},
	{'!', 0x8149, true},
	{'ー', 0x815B, true},
	{'/', 0x815E, true},
	{'\\', 0x815E, false},
	{'~', 0x8160, true},
	{'…', 0x8163, true},
	{'_', 0x8163, false},
	{'\'', 0x8166, true},
	{'’', 0x8166, false},
	{'“', 0x8167, false},
	{'"', 0x8168, true},
	{'”', 0x8168, false},
	{'(', 0x8169, true},
	{')', 0x816A, true},
	{'[', 0x816D, true},
	{']', 0x816E, true},
	{'+', 0x817B, true},
	{'-', 0x817C, true},
	{'×', 0x817E, true},
	{'。', 0x8142, true},
	{'<', 0x8183, true},
	{'>', 0x8184, true},
	{'%', 0x8193, true},
	{'#', 0x8194, true},
	{'&', 0x8195, true},
	{'*', 0x8196, true},
	{'@', 0x8197, true},
	{'\u3000', 0x8140, false},
	{'清', 0x90B4, true},
	{'麿', 0x969B, true},
	{'恵', 0x8C62, true},
	{'博', 0x948E, true},
}

// accents are the Latin letters drawn over the hiragana row of the patched
// font, directly after the lowercase letters.
var accents = []struct {
	char rune
	code Code
}{
	{'ñ', 0x82B9},
	{'á', 0x82BA},
	{'é', 0x82BB},
	{'í', 0x82BC},
	{'ó', 0x82BD},
	{'ú', 0x82BE},
	{'ü', 0x82BF},
	{'ç', 0x82C0},
	{'¿', 0x82C1},
	{'¡', 0x82C2},
}

// halfwidthPatched lists the halfwidth codes of the patched font that are
// not covered by a bank.
var halfwidthPatched = map[Code]rune{
	0xE000: ' ', 0xE00B: '?', 0xE00C: 'D', 0xE00D: 'E', 0xE00E: 'F', 0xE00F: 'G',
	0xE010: 'J', 0xE011: 'K', 0xE012: 'L', 0xE013: 'A', 0xE014: 'B', 0xE015: 'C',
	0xE016: 'N', 0xE017: 'P', 0xE018: 'Q', 0xE019: 'S', 0xE01A: 'U', 0xE01B: 'V',
	0xE01C: 'W', 0xE01D: 'R', 0xE01E: 'O', 0xE01F: 'M', 0xE020: 'X', 0xE021: 'Y',
	0xE022: 'Z', 0xE026: ':', 0xE027: '%', 0xE028: '.', 0xE029: 'H', 0xE02A: 'I',
	0xE02B: 'T', 0xE02C: '…', 0xE02D: 'ー', 0xE045: '\'', 0xE046: ',', 0xE047: 'á',
	0xE048: 'é', 0xE049: 'í', 0xE04A: 'ó', 0xE04B: 'ú', 0xE04C: 'ü', 0xE04D: 'ñ',
	0xE04E: '¿', 0xE04F: '¡', 0xE050: '!', 0xE051: 'ç',
}

// halfwidthNative lists the halfwidth codes of the unmodified font that are
// not covered by a bank. The codes from 0xE049 on are blank in the font.
var halfwidthNative = map[Code]rune{
	0xE000: ' ', 0xE00B: '?', 0xE00C: 'ひ', 0xE00D: 'ら', 0xE00E: 'が', 0xE00F: 'な',
	0xE010: 'カ', 0xE011: 'タ', 0xE012: 'ナ', 0xE013: 'A', 0xE014: 'B', 0xE015: 'C',
	0xE016: 'も', 0xE017: 'ど', 0xE018: 'る', 0xE019: 'け', 0xE01A: 'っ', 0xE01B: 'て',
	0xE01C: 'い', 0xE01D: 'R', 0xE01E: 'O', 0xE01F: 'M', 0xE020: ']', 0xE021: 'ソ',
	0xE022: 'プ', 0xE023: 'リ', 0xE024: '-', 0xE025: 'ト', 0xE026: ':', 0xE027: '%',
	0xE028: '.', 0xE029: 'H', 0xE02A: 'I', 0xE02B: 'T', 0xE02C: 'x', 0xE02D: 'ー',
	0xE02E: 'ア', 0xE02F: 'ク', 0xE030: 'シ', 0xE031: 'ヨ', 0xE032: '【', 0xE033: '】',
	0xE034: 'ス', 0xE035: 'ラ', 0xE036: 'ィ', 0xE037: 'ル', 0xE038: 'ザ', 0xE039: 'ク',
	0xE03A: 'ガ', 0xE03B: 'キ', 0xE03C: 'ヤ', 0xE03D: 'チ', 0xE03E: 'メ', 0xE03F: 'ピ',
	0xE040: 'ド', 0xE041: 'ワ', 0xE042: 'バ', 0xE043: 'イ', 0xE044: 'ベ', 0xE045: 't',
	0xE046: 'x', 0xE047: 'g', 0xE048: '｢', 0xE049: ' ', 0xE04A: ' ', 0xE04B: ' ',
	0xE04C: ' ', 0xE04D: ' ', 0xE04E: ' ', 0xE04F: ' ', 0xE050: ' ', 0xE051: ' ',
}

// fullwidthBanks map the fullwidth forms onto the same codes as their ASCII
// counterparts. They are encode only.
func fullwidthBanks(lowerBase Code) []Bank {
	return []Bank{
		{Name: "fullwidth digits", First: '０', Last: '９', Base: 0x824F},
		{Name: "fullwidth uppercase", First: 'Ａ', Last: 'Ｚ', Base: 0x8260},
		{Name: "fullwidth lowercase", First: 'ａ', Last: 'ｚ', Base: lowerBase},
	}
}

func baseTable(name string) *Table {
	t := &Table{
		Name:             name,
		EncodeExceptions: make(map[rune]Code),
		DecodeExceptions: make(map[Code]rune),
		Passthrough:      shiftJISRanges,
	}
	for _, p := range punctuation {
		t.EncodeExceptions[p.char] = p.code
		if p.decode {
			t.DecodeExceptions[p.code] = p.char
		}
	}
	t.DecodeExceptions[QuoteOpen] = '"'
	return t
}

// Patched returns the table of the translation patched font. Lowercase
// letters and accented Latin letters replace the start of the hiragana row.
func Patched() *Table {
	t := baseTable(PatchedName)

	for _, a := range accents {
		t.EncodeExceptions[a.char] = a.code
		t.DecodeExceptions[a.code] = a.char
	}
	t.DecodeExceptions[AccentIShifted] = 'í'
	t.EncodeExceptions['ヵ'] = 0x8395
	t.DecodeExceptions[0x8395] = 'ヵ'
	t.EncodeExceptions['ヶ'] = 0x8396
	t.DecodeExceptions[0x8396] = 'ヶ'
	for code, r := range halfwidthPatched {
		t.DecodeExceptions[code] = r
	}

	t.EncodeBanks = append([]Bank{
		{Name: "digits", First: '0', Last: '9', Base: 0x824F},
		{Name: "uppercase", First: 'A', Last: 'Z', Base: 0x8260},
		{Name: "lowercase", First: 'a', Last: 'z', Base: 0x829F},
	}, fullwidthBanks(0x829F)...)
	t.EncodeBanks = append(t.EncodeBanks,
		Bank{Name: "hiragana", First: 'づ', Last: 'ん', Base: 0x82C3},
		Bank{Name: "katakana low", First: 'ァ', Last: 'ミ', Base: 0x8340},
		Bank{Name: "katakana high", First: 'ム', Last: 'ン', Base: 0x8380},
	)

	t.DecodeBanks = []CodeBank{
		{Name: "digits", First: 0x824F, Last: 0x8258, Base: '0'},
		{Name: "uppercase", First: 0x8260, Last: 0x8279, Base: 'A'},
		{Name: "lowercase", First: 0x829F, Last: 0x82B8, Base: 'a'},
		{Name: "hiragana", First: 0x82C3, Last: 0x82F1, Base: 'づ'},
		{Name: "katakana low", First: 0x8340, Last: 0x837E, Base: 'ァ'},
		{Name: "katakana high", First: 0x8380, Last: 0x8393, Base: 'ム'},
		{Name: "halfwidth digits", First: 0xE001, Last: 0xE00A, Base: '0'},
		{Name: "halfwidth a-c", First: 0xE023, Last: 0xE025, Base: 'a'},
		{Name: "halfwidth d-z", First: 0xE02E, Last: 0xE044, Base: 'd'},
	}
	return t
}

// Native returns the table of the unmodified Japanese font.
func Native() *Table {
	t := baseTable(NativeName)

	for code, r := range halfwidthNative {
		t.DecodeExceptions[code] = r
	}

	t.EncodeBanks = append([]Bank{
		{Name: "digits", First: '0', Last: '9', Base: 0x824F},
		{Name: "uppercase", First: 'A', Last: 'Z', Base: 0x8260},
		{Name: "lowercase", First: 'a', Last: 'z', Base: 0x8281},
	}, fullwidthBanks(0x8281)...)
	t.EncodeBanks = append(t.EncodeBanks,
		Bank{Name: "hiragana", First: 'ぁ', Last: 'ん', Base: 0x829F},
		Bank{Name: "katakana low", First: 'ァ', Last: 'ミ', Base: 0x8340},
		Bank{Name: "katakana high", First: 'ム', Last: 'ヶ', Base: 0x8380},
	)

	t.DecodeBanks = []CodeBank{
		{Name: "digits", First: 0x824F, Last: 0x8258, Base: '0'},
		{Name: "uppercase", First: 0x8260, Last: 0x8279, Base: 'A'},
		{Name: "lowercase", First: 0x8281, Last: 0x829A, Base: 'a'},
		{Name: "hiragana", First: 0x829F, Last: 0x82F1, Base: 'ぁ'},
		{Name: "katakana low", First: 0x8340, Last: 0x837E, Base: 'ァ'},
		{Name: "katakana high", First: 0x8380, Last: 0x8396, Base: 'ム'},
		{Name: "halfwidth digits", First: 0xE001, Last: 0xE00A, Base: '0'},
	}
	return t
}

// ByName returns a built-in table.
func ByName(name string) (*Table, bool) {
	switch name {
	case PatchedName:
		return Patched(), true
	case NativeName:
		return Native(), true
	default:
		return nil, false
	}
}
