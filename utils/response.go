package utils

import (
	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
)

func JSONError(ctx iris.Context, status int, code, message string) {
	ctx.StopWithJSON(status, iris.Map{"error": code, "message": message})
}

// JSONCreated is the body of every successful mutation.
func JSONCreated(ctx iris.Context, message string, id uuid.UUID) {
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"message": message, "id": id})
}

func JSONUpdated(ctx iris.Context, message string, id uuid.UUID) {
	ctx.JSON(iris.Map{"message": message, "id": id})
}

// JSONList always renders a JSON array, never null.
func JSONList[T any](ctx iris.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	ctx.JSON(items)
}
