// Package fragspace holds the fragment space: the building blocks that
// mutations and graph growth draw from, and the class-level rules that say
// how they may be joined.
//
// A Library carries four pools of entries:
//
//	– scaffolds:     roots of new graphs;
//	– fragments:     ordinary building blocks;
//	– caps:          single-AP groups that saturate free APs;
//	– ring closers:  single-AP ring-closing vertices (RCVs).
//
// and the rules between AP classes:
//
//	– compatibility:          src class → allowed target classes;
//	– ring-closure matrix:    which parent classes may be joined by a chord;
//	– capping map:            class → class of the cap that saturates it;
//	– forbidden ends:         classes that must not stay free;
//	– bond map:               cutting-rule name → bond type (default single);
//	– symmetry probabilities: chance of growing symmetrically on a class.
//
// Library.Rule() turns the compatibility matrix into the apclass.Rule used
// by core.Graph, admitting RCVs on any class listed in the ring-closure
// matrix.
//
// Libraries are read-only once built and safe for concurrent use.
package fragspace
