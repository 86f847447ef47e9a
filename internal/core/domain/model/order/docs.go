// Package order implements the Order aggregate and its lifecycle state machine.
// An order moves through the two-stage allocation workflow: intake produces it
// in Pending, confirmation readies it for allocation, and the allocation
// coordinator advances it as rail and road legs are committed. Terminal states
// (Delivered, Cancelled) are immutable.
package order
