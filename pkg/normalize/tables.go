package normalize

// ligatureReplacements is the fixed table for ligatures and typographic
// punctuation applied after combining-mark stripping (step 3).
var ligatureReplacements = map[rune]string{
	'æ': "ae",
	'œ': "oe",
	'ø': "o",
	'ß': "ss",
	'ð': "d",
	'þ': "th",
	'‘': "",
	'’': "",
	'“': "",
	'”': "",
	'–': "-",
	'—': "-",
	'…': "...",
}

// legalSuffixTable maps lowercase legal-form and common-abbreviation tokens
// to their canonical expansions. Keys are matched against whitespace tokens
// AFTER punctuation stripping (step 5), so dotted multi-letter forms like
// "l.l.c." have already been broken into single-letter tokens by the time
// this table is consulted and will not match — the same documented-artifact
// class as the stop-word trailing-initial case (see DESIGN.md).
var legalSuffixTable = map[string]string{
	"inc":   "incorporated",
	"llc":   "limited liability company",
	"ltd":   "limited",
	"corp":  "corporation",
	"gmbh":  "gesellschaft mit beschrankter haftung",
	"pty":   "proprietary",
	"plc":   "public limited company",
	"llp":   "limited liability partnership",
	"lp":    "limited partnership",
	"co":    "company",
	"sarl":  "societe a responsabilite limitee",
	"bv":    "besloten vennootschap",
	"nv":    "naamloze vennootschap",
	"ag":    "aktiengesellschaft",
	"kk":    "kabushiki kaisha",
	"spa":   "societa per azioni",
	"sa":    "sociedad anonima",
	"assn":  "association",
	"dept":  "department",
	"auth":  "authority",
	"dist":  "district",
}

// stopWords is the fixed stop-word set for legal-name normalization.
var stopWords = map[string]bool{
	"the": true, "of": true, "a": true, "an": true, "and": true,
	"for": true, "in": true, "on": true, "at": true, "to": true, "by": true,
}

// streetTypeTable is the fixed USPS street-type and directional expansion
// table applied to address tokens after whitespace collapse.
var streetTypeTable = map[string]string{
	"st":    "street",
	"ave":   "avenue",
	"blvd":  "boulevard",
	"dr":    "drive",
	"ln":    "lane",
	"rd":    "road",
	"ct":    "court",
	"pl":    "place",
	"sq":    "square",
	"hwy":   "highway",
	"pkwy":  "parkway",
	"cir":   "circle",
	"ter":   "terrace",
	"n":     "north",
	"s":     "south",
	"e":     "east",
	"w":     "west",
	"ne":    "northeast",
	"nw":    "northwest",
	"se":    "southeast",
	"sw":    "southwest",
}
