package application

// supported database types
const (
	DBBadger   = "badger"
	DBInMemory = "inmemory"
	DBPostgres = "postgres"
)

// SupportedDBTypes is the set of database types a RepoManager can be built on
var SupportedDBTypes = map[string]struct{}{
	DBBadger:   {},
	DBInMemory: {},
	DBPostgres: {},
}

// entropy of the mnemonics generated by GenSeed
const seedEntropySize = 256
