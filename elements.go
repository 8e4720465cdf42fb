package elemtrack

// Element describes one entry of the periodic table: atomic number,
// symbol, English name, and its group (1-18) / period (1-7) position.
// Lanthanides (57-71) and actinides (89-103) carry group 3 and their
// natural period; layout moves them into the f-block rows.
type Element struct {
	Z      int
	Symbol string
	Name   string
	Group  int
	Period int
}

// GridPos addresses a cell of the conventional 18-column table layout.
type GridPos struct {
	Period int // row, 1-7 for the main block
	Group  int // column, 1-18
}

// PeriodicTable lists all 118 elements in atomic number order.
// Derived from the IUPAC periodic table (as of 2024).
var PeriodicTable = [118]Element{
	{1, "H", "Hydrogen", 1, 1},
	{2, "He", "Helium", 18, 1},
	{3, "Li", "Lithium", 1, 2},
	{4, "Be", "Beryllium", 2, 2},
	{5, "B", "Boron", 13, 2},
	{6, "C", "Carbon", 14, 2},
	{7, "N", "Nitrogen", 15, 2},
	{8, "O", "Oxygen", 16, 2},
	{9, "F", "Fluorine", 17, 2},
	{10, "Ne", "Neon", 18, 2},
	{11, "Na", "Sodium", 1, 3},
	{12, "Mg", "Magnesium", 2, 3},
	{13, "Al", "Aluminium", 13, 3},
	{14, "Si", "Silicon", 14, 3},
	{15, "P", "Phosphorus", 15, 3},
	{16, "S", "Sulfur", 16, 3},
	{17, "Cl", "Chlorine", 17, 3},
	{18, "Ar", "Argon", 18, 3},
	{19, "K", "Potassium", 1, 4},
	{20, "Ca", "Calcium", 2, 4},
	{21, "Sc", "Scandium", 3, 4},
	{22, "Ti", "Titanium", 4, 4},
	{23, "V", "Vanadium", 5, 4},
	{24, "Cr", "Chromium", 6, 4},
	{25, "Mn", "Manganese", 7, 4},
	{26, "Fe", "Iron", 8, 4},
	{27, "Co", "Cobalt", 9, 4},
	{28, "Ni", "Nickel", 10, 4},
	{29, "Cu", "Copper", 11, 4},
	{30, "Zn", "Zinc", 12, 4},
	{31, "Ga", "Gallium", 13, 4},
	{32, "Ge", "Germanium", 14, 4},
	{33, "As", "Arsenic", 15, 4},
	{34, "Se", "Selenium", 16, 4},
	{35, "Br", "Bromine", 17, 4},
	{36, "Kr", "Krypton", 18, 4},
	{37, "Rb", "Rubidium", 1, 5},
	{38, "Sr", "Strontium", 2, 5},
	{39, "Y", "Yttrium", 3, 5},
	{40, "Zr", "Zirconium", 4, 5},
	{41, "Nb", "Niobium", 5, 5},
	{42, "Mo", "Molybdenum", 6, 5},
	{43, "Tc", "Technetium", 7, 5},
	{44, "Ru", "Ruthenium", 8, 5},
	{45, "Rh", "Rhodium", 9, 5},
	{46, "Pd", "Palladium", 10, 5},
	{47, "Ag", "Silver", 11, 5},
	{48, "Cd", "Cadmium", 12, 5},
	{49, "In", "Indium", 13, 5},
	{50, "Sn", "Tin", 14, 5},
	{51, "Sb", "Antimony", 15, 5},
	{52, "Te", "Tellurium", 16, 5},
	{53, "I", "Iodine", 17, 5},
	{54, "Xe", "Xenon", 18, 5},
	{55, "Cs", "Caesium", 1, 6},
	{56, "Ba", "Barium", 2, 6},
	{57, "La", "Lanthanum", 3, 6},
	{58, "Ce", "Cerium", 3, 6},
	{59, "Pr", "Praseodymium", 3, 6},
	{60, "Nd", "Neodymium", 3, 6},
	{61, "Pm", "Promethium", 3, 6},
	{62, "Sm", "Samarium", 3, 6},
	{63, "Eu", "Europium", 3, 6},
	{64, "Gd", "Gadolinium", 3, 6},
	{65, "Tb", "Terbium", 3, 6},
	{66, "Dy", "Dysprosium", 3, 6},
	{67, "Ho", "Holmium", 3, 6},
	{68, "Er", "Erbium", 3, 6},
	{69, "Tm", "Thulium", 3, 6},
	{70, "Yb", "Ytterbium", 3, 6},
	{71, "Lu", "Lutetium", 3, 6},
	{72, "Hf", "Hafnium", 4, 6},
	{73, "Ta", "Tantalum", 5, 6},
	{74, "W", "Tungsten", 6, 6},
	{75, "Re", "Rhenium", 7, 6},
	{76, "Os", "Osmium", 8, 6},
	{77, "Ir", "Iridium", 9, 6},
	{78, "Pt", "Platinum", 10, 6},
	{79, "Au", "Gold", 11, 6},
	{80, "Hg", "Mercury", 12, 6},
	{81, "Tl", "Thallium", 13, 6},
	{82, "Pb", "Lead", 14, 6},
	{83, "Bi", "Bismuth", 15, 6},
	{84, "Po", "Polonium", 16, 6},
	{85, "At", "Astatine", 17, 6},
	{86, "Rn", "Radon", 18, 6},
	{87, "Fr", "Francium", 1, 7},
	{88, "Ra", "Radium", 2, 7},
	{89, "Ac", "Actinium", 3, 7},
	{90, "Th", "Thorium", 3, 7},
	{91, "Pa", "Protactinium", 3, 7},
	{92, "U", "Uranium", 3, 7},
	{93, "Np", "Neptunium", 3, 7},
	{94, "Pu", "Plutonium", 3, 7},
	{95, "Am", "Americium", 3, 7},
	{96, "Cm", "Curium", 3, 7},
	{97, "Bk", "Berkelium", 3, 7},
	{98, "Cf", "Californium", 3, 7},
	{99, "Es", "Einsteinium", 3, 7},
	{100, "Fm", "Fermium", 3, 7},
	{101, "Md", "Mendelevium", 3, 7},
	{102, "No", "Nobelium", 3, 7},
	{103, "Lr", "Lawrencium", 3, 7},
	{104, "Rf", "Rutherfordium", 4, 7},
	{105, "Db", "Dubnium", 5, 7},
	{106, "Sg", "Seaborgium", 6, 7},
	{107, "Bh", "Bohrium", 7, 7},
	{108, "Hs", "Hassium", 8, 7},
	{109, "Mt", "Meitnerium", 9, 7},
	{110, "Ds", "Darmstadtium", 10, 7},
	{111, "Rg", "Roentgenium", 11, 7},
	{112, "Cn", "Copernicium", 12, 7},
	{113, "Nh", "Nihonium", 13, 7},
	{114, "Fl", "Flerovium", 14, 7},
	{115, "Mc", "Moscovium", 15, 7},
	{116, "Lv", "Livermorium", 16, 7},
	{117, "Ts", "Tennessine", 17, 7},
	{118, "Og", "Oganesson", 18, 7},
}

// isFBlock reports whether z belongs to the lanthanide or actinide series.
func isFBlock(z int) bool {
	return (z >= 57 && z <= 71) || (z >= 89 && z <= 103)
}

// PositionMap returns the (period, group) -> Z mapping for the main block.
// F-block elements are excluded, and the anchor positions (6,3) and (7,3)
// are left unmapped so the renderer shows blank cells where the series
// markers would sit; the series themselves render on separate rows.
func PositionMap() map[GridPos]int {
	pos := make(map[GridPos]int, len(PeriodicTable))
	for _, e := range PeriodicTable {
		if isFBlock(e.Z) {
			continue
		}
		pos[GridPos{Period: e.Period, Group: e.Group}] = e.Z
	}
	return pos
}

// FBlock returns the lanthanide and actinide series in atomic number order.
func FBlock() (lanthanides, actinides []int) {
	for _, e := range PeriodicTable {
		switch {
		case e.Z >= 57 && e.Z <= 71:
			lanthanides = append(lanthanides, e.Z)
		case e.Z >= 89 && e.Z <= 103:
			actinides = append(actinides, e.Z)
		}
	}
	return lanthanides, actinides
}

// BySymbol looks up an element by its symbol.
func BySymbol(symbol string) (Element, bool) {
	for _, e := range PeriodicTable {
		if e.Symbol == symbol {
			return e, true
		}
	}
	return Element{}, false
}

// ByZ looks up an element by atomic number.
func ByZ(z int) (Element, bool) {
	if z < 1 || z > len(PeriodicTable) {
		return Element{}, false
	}
	return PeriodicTable[z-1], true
}
