// Package errx provides chained, metadata-rich errors.
//
// Every error belongs to a Kind. Kinds form a taxonomy: each kind records its
// lowercase name and a link to its parent, and the top of every taxonomy is
// Root. The chain of an error is the walk from its kind up to, but excluding,
// Root, listed root-most first:
//
//	Root
//	└── base
//	    └── external           level=external
//	        └── invalid_argument   eid=E2001
//
// An error of kind InvalidArgument has chain [base external invalid_argument]
// and echain "base.external.invalid_argument".
//
// Besides the chain, an error carries:
//   - eid: a stable identifying code (e.g. "E2001")
//   - level: a free-form classification tag (e.g. "internal", "database")
//   - solution: remediation text for the reader
//   - message: a one-line summary
//   - data: an opaque payload
//   - stack: the call stack captured at construction
//   - extra fields: any other key passed through Fill
//
// Errors are constructed through a small set of named forms:
//
//	errx.New(kind)
//	errx.FromMessage(kind, "user not found")
//	errx.FromMessageAndSolution(kind, "missing .env", "Please configure .env file first.")
//	errx.FromMessageAndFields(kind, "bad input", errx.Fields{"data": input, "request_id": id})
//	errx.FromFields(kind, errx.Fields{"message": "yo", "eid": "E01"})
//	errx.FromError(kind, err)
//	errx.Wrap(kind, "query failed", err)
//
// Construction never fails. Kind defaults are applied first, root-most tier
// first, so caller-supplied fields always win over them.
//
// Kinds are valid errors.Is targets, and an error matches its own kind and
// every ancestor:
//
//	if errors.Is(err, errx.External) {
//		// any external.* error
//	}
//
//	fmt.Println(errx.UserString(err))  // message for humans
//	fmt.Println(errx.DebugString(err)) // eid, echain, level and causes
package errx
