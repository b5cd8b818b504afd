package service

import (
	"context"

	"github.com/financeflow/financeflow/internal/api/dto"
	"github.com/financeflow/financeflow/internal/domain/client"
	"github.com/financeflow/financeflow/internal/types"
	"github.com/samber/lo"
)

type ClientService interface {
	CreateClient(ctx context.Context, req *dto.CreateClientRequest) (*dto.ClientResponse, error)
	ListClients(ctx context.Context) (*dto.ListClientsResponse, error)
	DeleteClient(ctx context.Context, id string) error
}

type clientService struct {
	ServiceParams
}

func NewClientService(params ServiceParams) ClientService {
	return &clientService{
		ServiceParams: params,
	}
}

func (s *clientService) CreateClient(ctx context.Context, req *dto.CreateClientRequest) (*dto.ClientResponse, error) {
	ownerID, err := types.ValidateOwnerContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := req.ToClient(ctx)
	if err := s.ClientRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	invalidateSnapshot(ctx, s.Snapshots, ownerID)

	s.Logger.Infow("client created", "owner_id", ownerID, "client_id", c.ID)
	return dto.NewClientResponse(c), nil
}

func (s *clientService) ListClients(ctx context.Context) (*dto.ListClientsResponse, error) {
	ownerID, err := types.ValidateOwnerContext(ctx)
	if err != nil {
		return nil, err
	}

	clients, err := s.ClientRepo.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return dto.NewListResponse(lo.Map(clients, func(c *client.Client, _ int) *dto.ClientResponse {
		return dto.NewClientResponse(c)
	})), nil
}

func (s *clientService) DeleteClient(ctx context.Context, id string) error {
	ownerID, err := types.ValidateOwnerContext(ctx)
	if err != nil {
		return err
	}

	if err := s.ClientRepo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	invalidateSnapshot(ctx, s.Snapshots, ownerID)

	s.Logger.Infow("client deleted", "owner_id", ownerID, "client_id", id)
	return nil
}
