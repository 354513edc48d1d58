package utils

import (
	"context"

	"service-desk/internal/entities"
	"service-desk/pkg/contextkeys"
	apperrors "service-desk/pkg/errors"
)

func GetActorFromCtx(ctx context.Context) (entities.Actor, error) {
	actor, ok := ctx.Value(contextkeys.ActorKey).(entities.Actor)
	if !ok || !actor.Role.Valid() {
		return entities.Actor{}, apperrors.ErrActorNotFoundInContext
	}
	return actor, nil
}

func ContextWithActor(ctx context.Context, actor entities.Actor) context.Context {
	return context.WithValue(ctx, contextkeys.ActorKey, actor)
}

func GetRequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(contextkeys.RequestIDKey).(string)
	return id
}
