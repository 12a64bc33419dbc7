package analyze

// Read-only reference tables shared by all analysis runs. They are
// initialized once at process start and never mutated, so concurrent
// runs need no locking.

// abbreviations whose trailing period must not end a sentence.
// Longer entries first so suffix matching is unambiguous.
var abbreviations = []string{
	"w.l.o.g.", "w.r.t.", "a.e.", "i.e.", "e.g.", "cf.", "resp.",
	"s.t.", "etc.", "viz.", "no.", "vs.",
}

// discourseMarkers open a new reasoning step.
var discourseMarkers = []string{
	"then", "hence", "therefore", "thus", "now", "next", "case",
	"suppose", "assume", "since", "because",
}

// assumptionKeywords introduce a hypothesis in clause-initial position.
var assumptionKeywords = []string{
	"let", "define", "assume", "suppose", "fix", "given",
}

// blockOpeners push a local scope onto the stack.
var blockOpeners = []string{
	"suppose for contradiction",
	"assume for contradiction",
	"assume towards a contradiction",
	"assume temporarily",
	"without loss of generality",
	"wlog",
	"case",
}

// blockClosers pop the innermost open scope.
var blockClosers = []string{
	"this completes case",
	"this completes the case",
	"end of case",
	"contradiction, so",
	"a contradiction, so",
	"which is a contradiction",
	"this contradicts",
}

// standardPhrases are "by <word>" idioms that never need a citation.
var standardPhrases = []string{
	"by definition", "by construction", "by assumption",
	"by hypothesis", "by induction", "by contradiction",
	"by symmetry", "by convention", "by continuity",
	"by linearity", "by inspection",
}

// standardSymbols never need an explicit introduction: e (Euler's
// constant), i (imaginary unit), d (differential), pi.
var standardSymbols = []string{"e", "i", "d", "pi"}

// operatorNames are recognized named operators. They are extracted as
// tokens but exempt from the undefined-symbol check.
var operatorNames = []string{
	"sup", "inf", "lim", "limsup", "liminf", "max", "min",
	"det", "ker", "dim", "deg", "gcd", "exp", "log", "ln",
	"sin", "cos", "tan", "arg", "mod", "tr", "rank", "span",
}

// greekLetters recognized as \<name> commands.
var greekLetters = []string{
	"alpha", "beta", "gamma", "delta", "epsilon", "varepsilon",
	"zeta", "eta", "theta", "vartheta", "iota", "kappa", "lambda",
	"mu", "nu", "xi", "pi", "rho", "sigma", "tau", "upsilon", "phi",
	"varphi", "chi", "psi", "omega",
	"Gamma", "Delta", "Theta", "Lambda", "Xi", "Pi", "Sigma",
	"Upsilon", "Phi", "Psi", "Omega",
}

// hedgePhrases signal a possible reasoning leap.
var hedgePhrases = []string{
	"clearly", "obviously", "trivially", "evidently", "plainly",
	"it is easy to see", "it is easy to check", "it is easy to verify",
	"it is clear that", "it is obvious that", "it is trivial",
	"one easily sees", "one easily checks",
	"follows immediately", "follows trivially", "follows easily",
	"straightforward",
}

// mathTerms contribute to the complexity score of a step. They catch
// mathematically heavy prose that carries no explicit math mode.
var mathTerms = []string{
	"integral", "derivative", "sum", "product", "series", "limit",
	"kernel", "operator", "matrix", "matrices", "norm", "measure",
	"supremum", "infimum", "eigenvalue", "eigenvector", "polynomial",
	"sequence", "subsequence", "convolution", "transform", "functional",
	"expectation", "variance", "manifold", "tensor", "homomorphism",
	"isomorphism", "automorphism", "quotient", "determinant",
	"gradient", "laplacian", "boundary", "closure", "interior",
	"neighborhood", "partition", "cardinality",
}

// propertyVocab is the fixed vocabulary of mathematical properties
// used by the unassumed-property check. Callers may extend it per run
// via AnalysisConfig.ExtraProperties; the table itself is never
// mutated.
var propertyVocab = []string{
	// topology / analysis
	"compact", "precompact", "locally compact", "bounded", "unbounded",
	"closed", "open", "clopen", "connected", "disconnected",
	"simply connected", "path-connected", "dense", "nowhere dense",
	"complete", "separable", "metrizable", "compactly supported",
	"continuous", "discontinuous", "uniformly continuous",
	"lower semicontinuous", "upper semicontinuous", "equicontinuous",
	"lipschitz", "holder", "differentiable", "twice differentiable",
	"smooth", "analytic", "holomorphic", "meromorphic", "harmonic",
	"subharmonic", "integrable", "square-integrable", "measurable",
	"borel", "lebesgue measurable", "convergent", "divergent",
	"absolutely convergent", "uniformly convergent", "cauchy",
	"summable", "convex", "concave", "strictly convex", "monotone",
	"increasing", "decreasing", "nondecreasing", "nonincreasing",
	"periodic", "oscillating", "vanishing",
	// algebra
	"abelian", "commutative", "noncommutative", "associative",
	"distributive", "cyclic", "finite", "infinite", "countable",
	"uncountable", "solvable", "nilpotent", "simple", "semisimple",
	"normal", "characteristic", "free", "torsion-free", "finitely generated",
	"irreducible", "reducible", "prime", "coprime", "composite",
	"maximal", "minimal", "principal", "noetherian", "artinian",
	"injective", "surjective", "bijective", "invertible", "singular",
	"nonsingular", "idempotent", "unipotent", "diagonalizable",
	// linear algebra / operators
	"linear", "nonlinear", "bilinear", "multilinear", "symmetric",
	"antisymmetric", "skew-symmetric", "hermitian", "self-adjoint",
	"unitary", "orthogonal", "orthonormal", "positive", "negative",
	"nonnegative", "nonpositive", "positive definite",
	"positive semidefinite", "negative definite", "degenerate",
	"nondegenerate", "trace-class", "compact operator",
	// geometry / order / misc
	"isomorphic", "homeomorphic", "diffeomorphic", "isometric",
	"equivalent", "congruent", "similar", "parallel", "perpendicular",
	"tangent", "regular", "even", "odd", "homogeneous",
	"inhomogeneous", "well-defined", "well-ordered", "total",
	"partial", "reflexive", "transitive", "antisymmetric relation",
	"independent", "dependent", "identically distributed", "uniform",
	"gaussian", "ergodic", "stationary", "stochastic", "deterministic",
}

// macroTable expands common shorthand commands during normalization.
// Regex-based so \R does not fire inside \Rightarrow.
var macroTable = []struct {
	pattern string
	repl    string
}{
	{`\\R\b`, `\mathbb{R}`},
	{`\\N\b`, `\mathbb{N}`},
	{`\\Z\b`, `\mathbb{Z}`},
	{`\\Q\b`, `\mathbb{Q}`},
	{`\\C\b`, `\mathbb{C}`},
	{`\\eps\b`, `\epsilon`},
	{`\\sse\b`, `\subseteq`},
	{`\\Ra\b`, `\Rightarrow`},
}

// mathEnvironments are environment names whose bodies are protected.
var mathEnvironments = map[string]bool{
	"equation":  true,
	"equation*": true,
	"align":     true,
	"align*":    true,
	"gather":    true,
	"gather*":   true,
	"multline":  true,
	"eqnarray":  true,
	"cases":     true,
	"array":     true,
}
