package basis

// STO-3G exponents and contraction coefficients (EMSL basis set
// exchange values). The inner-shell and valence-shell contraction
// coefficients are shared between elements; only exponents vary.
var (
	sto3gS1 = []float64{0.15432897, 0.53532814, 0.44463454}
	sto3gS2 = []float64{-0.09996723, 0.39951283, 0.70011547}
	sto3gP2 = []float64{0.15591627, 0.60768372, 0.39195739}
)

var sto3g = map[int][]Shell{
	1: {
		{L: 0, Exps: []float64{3.42525091, 0.62391373, 0.16885540}, Coefs: sto3gS1},
	},
	2: {
		{L: 0, Exps: []float64{6.36242139, 1.15892300, 0.31364979}, Coefs: sto3gS1},
	},
	3: {
		{L: 0, Exps: []float64{16.1195750, 2.93620070, 0.79465050}, Coefs: sto3gS1},
		{L: 0, Exps: []float64{0.63628970, 0.14786010, 0.04808870}, Coefs: sto3gS2},
		{L: 1, Exps: []float64{0.63628970, 0.14786010, 0.04808870}, Coefs: sto3gP2},
	},
	4: {
		{L: 0, Exps: []float64{30.1678710, 5.49511530, 1.48719270}, Coefs: sto3gS1},
		{L: 0, Exps: []float64{1.31483310, 0.30553890, 0.09937070}, Coefs: sto3gS2},
		{L: 1, Exps: []float64{1.31483310, 0.30553890, 0.09937070}, Coefs: sto3gP2},
	},
	5: {
		{L: 0, Exps: []float64{48.7911130, 8.88736220, 2.40526700}, Coefs: sto3gS1},
		{L: 0, Exps: []float64{2.23695610, 0.51982050, 0.16906180}, Coefs: sto3gS2},
		{L: 1, Exps: []float64{2.23695610, 0.51982050, 0.16906180}, Coefs: sto3gP2},
	},
	6: {
		{L: 0, Exps: []float64{71.6168370, 13.0450960, 3.53051220}, Coefs: sto3gS1},
		{L: 0, Exps: []float64{2.94124940, 0.68348310, 0.22228990}, Coefs: sto3gS2},
		{L: 1, Exps: []float64{2.94124940, 0.68348310, 0.22228990}, Coefs: sto3gP2},
	},
	7: {
		{L: 0, Exps: []float64{99.1061690, 18.0523120, 4.88566020}, Coefs: sto3gS1},
		{L: 0, Exps: []float64{3.78045590, 0.87849660, 0.28571440}, Coefs: sto3gS2},
		{L: 1, Exps: []float64{3.78045590, 0.87849660, 0.28571440}, Coefs: sto3gP2},
	},
	8: {
		{L: 0, Exps: []float64{130.7093200, 23.8088610, 6.44360830}, Coefs: sto3gS1},
		{L: 0, Exps: []float64{5.03315130, 1.16959610, 0.38038900}, Coefs: sto3gS2},
		{L: 1, Exps: []float64{5.03315130, 1.16959610, 0.38038900}, Coefs: sto3gP2},
	},
	9: {
		{L: 0, Exps: []float64{166.6791300, 30.3608120, 8.21682070}, Coefs: sto3gS1},
		{L: 0, Exps: []float64{6.46480320, 1.50228120, 0.48858850}, Coefs: sto3gS2},
		{L: 1, Exps: []float64{6.46480320, 1.50228120, 0.48858850}, Coefs: sto3gP2},
	},
	10: {
		{L: 0, Exps: []float64{207.0156100, 37.7081510, 10.2052970}, Coefs: sto3gS1},
		{L: 0, Exps: []float64{8.24631510, 1.91626620, 0.62322930}, Coefs: sto3gS2},
		{L: 1, Exps: []float64{8.24631510, 1.91626620, 0.62322930}, Coefs: sto3gP2},
	},
}

// 6-31G for the lightest elements.
var b631g = map[int][]Shell{
	1: {
		{L: 0, Exps: []float64{18.7311370, 2.8253937, 0.6401217},
			Coefs: []float64{0.03349460, 0.23472695, 0.81375733}},
		{L: 0, Exps: []float64{0.1612778}, Coefs: []float64{1.0}},
	},
	2: {
		{L: 0, Exps: []float64{38.4216340, 5.7780300, 1.2417740},
			Coefs: []float64{0.04013974, 0.26100030, 0.79312290}},
		{L: 0, Exps: []float64{0.2979640}, Coefs: []float64{1.0}},
	},
}
