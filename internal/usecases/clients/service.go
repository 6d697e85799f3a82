package clients

import (
	"github.com/sirupsen/logrus"
	"github.com/wmarczak/reporting-api/infrastructure/repository"
	"github.com/wmarczak/reporting-api/internal/domain"
	"github.com/wmarczak/reporting-api/pkg/apiErrors"
	"github.com/wmarczak/reporting-api/pkg/utils"
)

// ClientResponse é a visão de cliente devolvida pela API
type ClientResponse struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Status    domain.ClientStatus `json:"status"`
	HasMeta   bool                `json:"has_meta"`
	HasGoogle bool                `json:"has_google"`
}

type ClientService interface {
	ListClients(availableStatus []domain.ClientStatus) ([]*ClientResponse, error)
	GetClient(clientID string) (*domain.Client, error)
	CreateClient(client *domain.Client) (*domain.Client, error)
	UpdateClient(request *domain.UpdateClientRequest) error
}

type Service struct {
	clientRepository repository.ClientRepository
}

func NewService(clientRepository repository.ClientRepository) ClientService {
	return &Service{
		clientRepository: clientRepository,
	}
}

func (s *Service) ListClients(availableStatus []domain.ClientStatus) ([]*ClientResponse, error) {
	clientList, err := s.clientRepository.ListClients(availableStatus)
	if err != nil {
		return nil, NewClientError(ErrFetchClients, apiErrors.ErrDatabaseOperation, "Falha ao listar clientes no banco de dados")
	}

	// Transforma os clientes para o formato de resposta da API, sem expor os
	// identificadores das contas de anúncios
	response := make([]*ClientResponse, 0, len(clientList))
	for _, client := range clientList {
		response = append(response, &ClientResponse{
			ID:        client.ID,
			Name:      client.Name,
			Status:    client.Status,
			HasMeta:   client.HasMeta(),
			HasGoogle: client.HasGoogle(),
		})
	}

	return response, nil
}

func (s *Service) GetClient(clientID string) (*domain.Client, error) {
	if clientID == "" {
		return nil, NewClientError(ErrClientIDRequired, apiErrors.ErrMissingRequiredData, "ID do cliente não informado")
	}

	client, err := s.clientRepository.GetByID(clientID)
	if err != nil {
		return nil, NewClientErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, clientID, "Falha ao buscar cliente no banco de dados")
	}

	if client == nil {
		return nil, NewClientErrorWithID(ErrClientNotFound, apiErrors.ErrResourceNotFound, clientID, "Cliente não encontrado")
	}

	return client, nil
}

func (s *Service) CreateClient(client *domain.Client) (*domain.Client, error) {
	if client.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, NewClientError(ErrDatabaseOperation, apiErrors.ErrInternalServer, "Falha ao gerar ID do cliente")
		}
		client.ID = id
	}

	if client.Status == "" {
		client.Status = domain.ClientStatusActive
	}

	if err := s.clientRepository.SaveOrUpdate(client); err != nil {
		logrus.WithError(err).WithField("client_id", client.ID).Error("Erro ao salvar cliente")
		return nil, NewClientErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, client.ID, "Falha ao salvar cliente no banco de dados")
	}

	return client, nil
}

func (s *Service) UpdateClient(request *domain.UpdateClientRequest) error {
	if request.ID == "" {
		return NewClientError(ErrClientIDRequired, apiErrors.ErrMissingRequiredData, "ID do cliente não informado")
	}

	if err := s.clientRepository.UpdateClient(request); err != nil {
		logrus.WithError(err).WithField("client_id", request.ID).Error("Erro ao atualizar cliente")
		return NewClientErrorWithID(ErrUpdateClient, apiErrors.ErrDatabaseOperation, request.ID, "Falha ao atualizar cliente no banco de dados")
	}

	return nil
}
