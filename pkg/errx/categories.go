package errx

// Conventional levels used by the standard taxonomy.
const (
	LevelInternal = "internal"
	LevelExternal = "external"
	LevelDatabase = "database"
)

// Standard taxonomy. Identifying codes follow a four-digit scheme where the
// first digit is the family:
//   - E1xxx: internal errors (bugs, configuration, dependencies)
//   - E2xxx: external errors (caused by the caller's input)
//   - E3xxx: database errors
var (
	// Base is the first tier of the standard taxonomy.
	Base = NewKind("base", Root)

	Internal = NewKind("internal", Base, Fields{FieldLevel: LevelInternal, FieldEID: "E1000"})
	External = NewKind("external", Base, Fields{FieldLevel: LevelExternal, FieldEID: "E2000"})
	Database = NewKind("database", Base, Fields{FieldLevel: LevelDatabase, FieldEID: "E3000"})

	Config      = NewKind("config", Internal, Fields{FieldEID: "E1001"})
	Unavailable = NewKind("unavailable", Internal, Fields{FieldEID: "E1002"})
	Timeout     = NewKind("timeout", Internal, Fields{FieldEID: "E1003"})

	InvalidArgument = NewKind("invalid_argument", External, Fields{FieldEID: "E2001"})
	NotFound        = NewKind("not_found", External, Fields{FieldEID: "E2002"})
	Unauthorized    = NewKind("unauthorized", External, Fields{FieldEID: "E2003"})
	Forbidden       = NewKind("forbidden", External, Fields{FieldEID: "E2004"})
	Conflict        = NewKind("conflict", External, Fields{FieldEID: "E2005"})

	Query      = NewKind("query", Database, Fields{FieldEID: "E3001"})
	Connection = NewKind("connection", Database, Fields{FieldEID: "E3002"})

	// Taxonomy errors raised by Registry.
	InvalidKind   = NewKind("invalid_kind", Config, Fields{FieldEID: "E1011"})
	DuplicateKind = NewKind("duplicate_kind", Config, Fields{FieldEID: "E1012"})
)

var standardKinds = []*Kind{
	Base,
	Internal,
	External,
	Database,
	Config,
	Unavailable,
	Timeout,
	InvalidArgument,
	NotFound,
	Unauthorized,
	Forbidden,
	Conflict,
	Query,
	Connection,
	InvalidKind,
	DuplicateKind,
}

// StandardKinds returns the standard taxonomy in declaration order.
func StandardKinds() []*Kind {
	kinds := make([]*Kind, len(standardKinds))
	copy(kinds, standardKinds)
	return kinds
}
