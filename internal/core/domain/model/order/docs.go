// Package order contains the order aggregate and its supporting value
// objects: the Status state machine, the Source provenance tag, the
// append-only HistoryRecord ledger entry, and the StatusChangedEvent handed
// to the notification layer after a committed transition.
//
// The transition table is the single authority on which status changes are
// legal; every entry path (operations-initiated and delivery-initiated)
// funnels through Order.ChangeStatus and therefore through the same table.
package order
