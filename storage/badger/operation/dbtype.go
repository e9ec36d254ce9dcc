package operation

import (
	"github.com/dgraph-io/badger/v2"
)

// DBTypeSoloMachine marks a badger database owned by the solo machine.
const DBTypeSoloMachine = "solo-machine"

func InsertDBType(dbType string) func(*badger.Txn) error {
	return insert(makePrefix(codeDBType), dbType)
}

func RetrieveDBType(dbType *string) func(*badger.Txn) error {
	return retrieve(makePrefix(codeDBType), dbType)
}
