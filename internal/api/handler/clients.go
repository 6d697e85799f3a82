package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wmarczak/reporting-api/internal/domain"
	"github.com/wmarczak/reporting-api/internal/usecases/clients"
	"github.com/wmarczak/reporting-api/pkg/apiErrors"
	"github.com/wmarczak/reporting-api/pkg/log"
)

// ClientList lista os clientes, opcionalmente filtrando por status
func ClientList(service clients.ClientService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("clients: listing clients")

		var statusFilter []domain.ClientStatus
		if raw := r.URL.Query().Get("status"); raw != "" {
			statusFilter = append(statusFilter, domain.ClientStatus(raw))
		}

		clientList, err := service.ListClients(statusFilter)
		if err != nil {
			writeClientError(w, logger, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(clientList); err != nil {
			logger.WithError(err).Error("clients: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// CreateClient registra um novo cliente com suas contas de anúncios
func CreateClient(service clients.ClientService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		client := &domain.Client{}
		if err := json.NewDecoder(r.Body).Decode(client); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if client.Name == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome do cliente é obrigatório", nil)
			return
		}

		created, err := service.CreateClient(client)
		if err != nil {
			writeClientError(w, logger, err)
			return
		}

		logger.WithField("client_id", created.ID).Info("clients: client created")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	})
}

// UpdateClient atualiza os campos informados de um cliente
func UpdateClient(service clients.ClientService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		request := &domain.UpdateClientRequest{}
		if err := json.NewDecoder(r.Body).Decode(request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}
		request.ID = id

		if err := service.UpdateClient(request); err != nil {
			writeClientError(w, logger, err)
			return
		}

		logger.WithField("client_id", id).Info("clients: client updated")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Cliente atualizado com sucesso",
			"id":      id,
		})
	})
}

func writeClientError(w http.ResponseWriter, logger log.Logger, err error) {
	var clientErr *clients.ClientError
	if errors.As(err, &clientErr) {
		logger.WithError(err).Warn("clients: request failed")
		apiErrors.WriteError(w, clientErr.Code, clientErr.Error(), nil)
		return
	}

	logger.WithError(err).Error("clients: unexpected error")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
}
