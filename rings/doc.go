// Package rings analyses candidate rings on a core.Graph: the tree path
// between two ring-closing vertices, its canonical chain identifiers, and
// whether the geometry around the two ends allows the ring to close.
//
// Path finding:
//
//	p, ok := rings.FindPath(head, tail)
//
// climbs from both ends to the root, takes the first common ancestor as the
// turning point and walks head → turning point → tail. The chain identifier
// concatenates one token per interior vertex,
//
//	<building-block ID>/<role>/ap<i>ap<j>_
//
// where i is the AP facing the head and j the AP facing the tail. The two
// ring-closing ends are left out so that RCVs drawn from different libraries
// do not split otherwise identical chains. The forward and reverse strings,
// and every cyclic rotation of their token lists, are synonyms; each carries
// the suffix "%<interior index of the turning point>" (-1 when the turning
// point is one of the ends).
//
// Closability:
//
//	– Closure holds the four points H1, H2 (head bond) and T1, T2 (tail bond).
//	– BondOverlap wants the two bonds to overlap: H1 near T2, H2 near T1.
//	– BondComplementarity wants them to complete each other: H2 near T2,
//	  H1–T2 close to |H1H2| and H2–T1 close to |T1T2|.
//	– Quality is the sum of absolute deviations from the ideal distances of
//	  the strategy; lower is better and it is used for ranking only.
//
// Archive memoizes verdicts under every synonym of a chain and is safe for
// concurrent use. Checker ties sizes, conformers, evaluator and archive
// together for the ring-adding mutation.
//
// Errors (sentinel):
//
//	– ErrUnknownStrategy   unrecognised strategy name.
//	– ErrBadTolerance      non-positive distance or extra tolerance.
//	– ErrBadRingSize       inconsistent ring size bounds.
package rings
