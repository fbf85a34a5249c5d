package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/daylog/internal/api"
	"github.com/dmitrijs2005/daylog/internal/common"
	"github.com/dmitrijs2005/daylog/internal/server/models"
	"github.com/dmitrijs2005/daylog/internal/timex"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// mapError turns service errors into gRPC statuses. Unknown errors are
// logged and reported as Internal without details.
func (s *GRPCServer) mapError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, common.ErrRefreshTokenExpired.Error())
	default:
		s.logger.Error(ctx, "request failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

func toAPIRecord(r *models.Record) *api.Record {
	return &api.Record{
		ID:         r.ID,
		Date:       r.OccurredOn.String(),
		LoggedAt:   r.LoggedAt,
		ScaleValue: r.ScaleValue,
		Count:      r.Count,
		Note:       r.Note,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func toAPIRecords(in []models.Record) []*api.Record {
	out := make([]*api.Record, 0, len(in))
	for i := range in {
		out = append(out, toAPIRecord(&in[i]))
	}
	return out
}

func fromAPIFields(f *api.RecordFields) (*models.Record, error) {
	if f == nil {
		return nil, status.Error(codes.InvalidArgument, "fields are required")
	}
	date, err := timex.ParseDate(f.Date)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "bad date: "+err.Error())
	}
	return &models.Record{
		OccurredOn: date,
		LoggedAt:   f.LoggedAt.UTC(),
		ScaleValue: f.ScaleValue,
		Count:      f.Count,
		Note:       f.Note,
	}, nil
}

func (s *GRPCServer) currentUser(ctx context.Context) (string, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "missing user")
	}
	return userID, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) RegisterUser(ctx context.Context, req *api.RegisterUserRequest) (*api.RegisterUserResponse, error) {

	s.logger.Info(ctx, "Registration request", "username", req.Username)

	user, err := s.users.Register(ctx, req.Username, req.Salt, req.Verifier)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "username", req.Username, "user_id", user.ID)
	return &api.RegisterUserResponse{UserID: user.ID}, nil
}

func (s *GRPCServer) GetSalt(ctx context.Context, req *api.GetSaltRequest) (*api.GetSaltResponse, error) {

	salt, err := s.users.GetSalt(ctx, req.Username)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	return &api.GetSaltResponse{Salt: salt}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {

	tokens, err := s.users.Login(ctx, req.Username, req.VerifierCandidate)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	return &api.LoginResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.RefreshTokenResponse, error) {

	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	return &api.RefreshTokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) ListRecords(ctx context.Context, req *api.ListRecordsRequest) (*api.ListRecordsResponse, error) {
	userID, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.records.List(ctx, userID)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	return &api.ListRecordsResponse{Records: toAPIRecords(items)}, nil
}

func (s *GRPCServer) GetRecordsByDate(ctx context.Context, req *api.GetRecordsByDateRequest) (*api.GetRecordsByDateResponse, error) {
	userID, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	date, err := timex.ParseDate(req.Date)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "bad date: "+err.Error())
	}

	items, err := s.records.ListByDate(ctx, userID, date)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	return &api.GetRecordsByDateResponse{Records: toAPIRecords(items)}, nil
}

func (s *GRPCServer) CreateRecord(ctx context.Context, req *api.CreateRecordRequest) (*api.CreateRecordResponse, error) {
	userID, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	r, err := fromAPIFields(req.Fields)
	if err != nil {
		return nil, err
	}

	created, err := s.records.Create(ctx, userID, r)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	s.logger.Debug(ctx, "Record created", "user_id", userID, "id", created.ID)
	return &api.CreateRecordResponse{Record: toAPIRecord(created)}, nil
}

func (s *GRPCServer) UpdateRecord(ctx context.Context, req *api.UpdateRecordRequest) (*api.UpdateRecordResponse, error) {
	userID, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	r, err := fromAPIFields(req.Fields)
	if err != nil {
		return nil, err
	}

	updated, err := s.records.Update(ctx, userID, req.ID, r)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	return &api.UpdateRecordResponse{Record: toAPIRecord(updated)}, nil
}

func (s *GRPCServer) DeleteRecord(ctx context.Context, req *api.DeleteRecordRequest) (*api.DeleteRecordResponse, error) {
	userID, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.records.Delete(ctx, userID, req.ID); err != nil {
		return nil, s.mapError(ctx, err)
	}

	return &api.DeleteRecordResponse{}, nil
}
