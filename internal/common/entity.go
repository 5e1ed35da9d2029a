package common

import (
	"fmt"
	"strings"
)

type EntityKind string

const (
	EntityKindBlock       EntityKind = "block"
	EntityKindTransaction EntityKind = "transaction"
	EntityKindAccount     EntityKind = "account"
	EntityKindLog         EntityKind = "log"
)

// EntityId identifies what a query selects. Only the variants declared in
// this package implement it.
type EntityId interface {
	Kind() EntityKind
	String() string
	entityId()
}

type BlockEntity struct {
	Range BlockRange
}

func (BlockEntity) Kind() EntityKind { return EntityKindBlock }
func (e BlockEntity) String() string { return fmt.Sprintf("block %s", e.Range) }
func (BlockEntity) entityId()        {}

type TransactionEntity struct {
	Hashes []string
}

func (TransactionEntity) Kind() EntityKind { return EntityKindTransaction }
func (e TransactionEntity) String() string {
	return fmt.Sprintf("transaction %s", strings.Join(e.Hashes, ","))
}
func (TransactionEntity) entityId() {}

type AccountEntity struct {
	Address string
}

func (AccountEntity) Kind() EntityKind { return EntityKindAccount }
func (e AccountEntity) String() string { return fmt.Sprintf("account %s", e.Address) }
func (AccountEntity) entityId()        {}

type LogEntity struct {
	Filter string
}

func (LogEntity) Kind() EntityKind { return EntityKindLog }
func (e LogEntity) String() string { return fmt.Sprintf("log %s", e.Filter) }
func (LogEntity) entityId()        {}
