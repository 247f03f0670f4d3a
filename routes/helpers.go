package routes

import (
	"residency-server/storage"
	"residency-server/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// idParam parses the {id} path parameter, answering 400 when it is not a
// UUID.
func idParam(ctx iris.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Params().Get("id"))
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// parseIDs drops entries that are not UUIDs, the same way unknown ids are
// dropped.
func parseIDs(raw []string) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		if id, err := uuid.Parse(s); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// inTx runs one request's writes as a unit of work; any error rolls them all
// back.
func inTx(fn func(tx *gorm.DB) error) error {
	return storage.DB.Transaction(fn)
}
