package shared

import (
	"strconv"
)

func ResourceLockKey(id int64) string {
	return "resource:" + strconv.FormatInt(id, 10)
}

// InventoryLockKey serializes reconciliation passes against each other.
const InventoryLockKey = "inventory"

func ReservationLockKey(id int64) string {
	return "reservation:" + strconv.FormatInt(id, 10)
}

// UserLockKey serializes quota checks for one user whichever identity form
// the request used.
func UserLockKey(id int64) string {
	return "user:" + strconv.FormatInt(id, 10)
}
