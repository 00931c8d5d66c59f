package curriculum

import (
	"context"

	"github.com/prashnalabs/papergen-backend/internal/model"
)

// localTables is the last-resort offline reference: board → class → subject
// → ordered chapter names. English only; the curated tables own the Hindi
// side. CBSE and NCERT double as nation-wide fallbacks for every board.
var localTables = map[model.Board]map[string]map[string][]string{
	model.BoardCBSE: {
		"8": {
			"Science": {
				"Crop Production and Management",
				"Microorganisms: Friend and Foe",
				"Coal and Petroleum",
				"Combustion and Flame",
				"Conservation of Plants and Animals",
				"Reproduction in Animals",
				"Force and Pressure",
				"Friction",
				"Sound",
				"Chemical Effects of Electric Current",
				"Light",
			},
			"Mathematics": {
				"Rational Numbers",
				"Linear Equations in One Variable",
				"Understanding Quadrilaterals",
				"Data Handling",
				"Squares and Square Roots",
				"Cubes and Cube Roots",
				"Comparing Quantities",
				"Algebraic Expressions and Identities",
				"Mensuration",
				"Exponents and Powers",
				"Direct and Inverse Proportions",
				"Factorisation",
				"Introduction to Graphs",
			},
		},
		"12": {
			"Physics": {
				"Electric Charges and Fields",
				"Electrostatic Potential and Capacitance",
				"Current Electricity",
				"Moving Charges and Magnetism",
				"Magnetism and Matter",
				"Electromagnetic Induction",
				"Alternating Current",
				"Electromagnetic Waves",
				"Ray Optics and Optical Instruments",
				"Wave Optics",
				"Dual Nature of Radiation and Matter",
				"Atoms",
				"Nuclei",
				"Semiconductor Electronics",
			},
		},
	},
	model.BoardNCERT: {
		"7": {
			"Science": {
				"Nutrition in Plants",
				"Nutrition in Animals",
				"Heat",
				"Acids, Bases and Salts",
				"Physical and Chemical Changes",
				"Respiration in Organisms",
				"Transportation in Animals and Plants",
				"Motion and Time",
				"Electric Current and its Effects",
				"Light",
				"Wastewater Story",
			},
		},
	},
	model.BoardUP: {
		"10": {
			"Hindi": {
				"हिंदी गद्य का विकास",
				"पद्य साहित्य का विकास",
				"संस्कृत खंड",
				"काव्य सौंदर्य के तत्व",
				"हिंदी व्याकरण",
			},
		},
	},
}

// LocalProvider serves the offline table of a single fixed board. The chain
// stacks three of these: the selected board, then CBSE, then NCERT.
type LocalProvider struct {
	board  model.Board
	source model.ResolutionSource
}

// NewLocalBoardProvider serves the table of whichever board the query names.
func NewLocalBoardProvider() *LocalProvider {
	return &LocalProvider{source: model.SourceLocalBoard}
}

// NewLocalCBSEProvider serves the CBSE table regardless of the query board.
func NewLocalCBSEProvider() *LocalProvider {
	return &LocalProvider{board: model.BoardCBSE, source: model.SourceLocalCBSE}
}

// NewLocalNCERTProvider serves the NCERT table regardless of the query board.
func NewLocalNCERTProvider() *LocalProvider {
	return &LocalProvider{board: model.BoardNCERT, source: model.SourceLocalNCERT}
}

func (p *LocalProvider) Source() model.ResolutionSource {
	return p.source
}

func (p *LocalProvider) Lookup(_ context.Context, q Query) ([]model.Chapter, error) {
	board := p.board
	if board == "" {
		board = q.Board
	}
	classes, ok := localTables[board]
	if !ok {
		return nil, nil
	}
	subjects, ok := classes[q.ClassName]
	if !ok {
		return nil, nil
	}
	names := subjects[q.Subject]
	if len(names) == 0 {
		return nil, nil
	}
	return model.ChaptersFromNames(names), nil
}
