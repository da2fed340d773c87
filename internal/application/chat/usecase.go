package chat

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tu-usuario/autosqp-api/internal/application/dto"
	"github.com/tu-usuario/autosqp-api/internal/domain"
	"github.com/tu-usuario/autosqp-api/internal/domain/assign"
	"github.com/tu-usuario/autosqp-api/internal/domain/authz"
	"github.com/tu-usuario/autosqp-api/internal/domain/entity"
	"github.com/tu-usuario/autosqp-api/internal/domain/repository"
	"github.com/tu-usuario/autosqp-api/pkg/textutil"
)

// InboundEvent evento normalizado que entrega el canal de mensajería:
// un mensaje entrante de un número hacia el concesionario.
type InboundEvent struct {
	FromPhone   string
	DisplayName string
	Body        string
	MediaURL    string
	MessageType string // vacío = text
	ExternalID  string
	Timestamp   time.Time
}

// ChatUseCase casos de uso del registro de conversaciones: listado, envío
// saliente y upsert del webhook entrante.
type ChatUseCase struct {
	convRepo         repository.ConversationRepository
	msgRepo          repository.MessageRepository
	leadRepo         repository.LeadRepository
	userRepo         repository.UserRepository
	companyRepo      repository.CompanyRepository
	txRunner         TxRunner
	sender           OutboundSender
	selector         assign.Selector
	defaultCompanyID string
	log              zerolog.Logger
}

// NewChatUseCase construye el caso de uso. defaultCompanyID es la empresa
// destino de los mensajes entrantes; vacío cae en la más antigua registrada.
func NewChatUseCase(
	convRepo repository.ConversationRepository,
	msgRepo repository.MessageRepository,
	leadRepo repository.LeadRepository,
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	txRunner TxRunner,
	sender OutboundSender,
	selector assign.Selector,
	defaultCompanyID string,
	log zerolog.Logger,
) *ChatUseCase {
	return &ChatUseCase{
		convRepo:         convRepo,
		msgRepo:          msgRepo,
		leadRepo:         leadRepo,
		userRepo:         userRepo,
		companyRepo:      companyRepo,
		txRunner:         txRunner,
		sender:           sender,
		selector:         selector,
		defaultCompanyID: defaultCompanyID,
		log:              log,
	}
}

// ListConversations lista las conversaciones de la empresa, más recientes
// primero, con nombre y teléfono del lead hidratados.
func (uc *ChatUseCase) ListConversations(id authz.Identity, page dto.PageRequest) ([]*dto.ConversationResponse, error) {
	page.DefaultPage()
	list, err := uc.convRepo.List(id.CompanyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ConversationResponse, 0, len(list))
	for _, c := range list {
		resp := &dto.ConversationResponse{
			ID:            c.ID,
			LeadID:        c.LeadID,
			CompanyID:     c.CompanyID,
			LastMessageAt: c.LastMessageAt,
		}
		if lead, err := uc.leadRepo.GetByID(c.LeadID); err == nil && lead != nil {
			resp.LeadName = lead.Name
			resp.LeadPhone = lead.Phone
		}
		out = append(out, resp)
	}
	return out, nil
}

// ListMessages devuelve el hilo completo de una conversación en orden
// cronológico.
func (uc *ChatUseCase) ListMessages(id authz.Identity, conversationID string) ([]*dto.MessageResponse, error) {
	conv, err := uc.loadScoped(id, conversationID)
	if err != nil {
		return nil, err
	}
	msgs, err := uc.msgRepo.ListByConversation(conv.ID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	return out, nil
}

// SendMessage envía un mensaje del usuario al lead por el canal saliente.
// El mensaje se persiste siempre: si el envío falla queda con estado failed
// y el error no se propaga como fallo de la operación.
func (uc *ChatUseCase) SendMessage(ctx context.Context, id authz.Identity, conversationID string, in dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if in.Content == "" {
		return nil, domain.ErrInvalidInput
	}
	conv, err := uc.loadScoped(id, conversationID)
	if err != nil {
		return nil, err
	}
	lead, err := uc.leadRepo.GetByID(conv.LeadID)
	if err != nil {
		return nil, err
	}
	if lead == nil || lead.Phone == "" {
		return nil, domain.ErrInvalidInput
	}

	status := entity.MessageStatusSent
	externalID, sendErr := uc.sender.SendText(ctx, lead.Phone, in.Content)
	if sendErr != nil {
		status = entity.MessageStatusFailed
		uc.log.Warn().Err(sendErr).Str("conversation_id", conv.ID).Msg("envío saliente fallido; el mensaje se persiste igual")
	}

	now := time.Now()
	msg := &entity.Message{
		ID:                uuid.New().String(),
		ConversationID:    conv.ID,
		SenderType:        entity.SenderTypeUser,
		Content:           in.Content,
		MessageType:       entity.MessageTypeText,
		WhatsAppMessageID: externalID,
		Status:            status,
		CreatedAt:         now,
	}
	if err := uc.msgRepo.Create(msg); err != nil {
		return nil, err
	}
	if err := uc.convRepo.TouchLastMessage(conv.ID, now); err != nil {
		return nil, err
	}
	return toMessageResponse(msg), nil
}

// HandleInbound procesa un mensaje entrante del canal: encuentra o crea el
// lead por teléfono (con auto-asignación), encuentra o crea su conversación
// y anexa el mensaje, todo en una transacción.
func (uc *ChatUseCase) HandleInbound(ctx context.Context, ev InboundEvent) error {
	if ev.FromPhone == "" {
		return domain.ErrInvalidInput
	}
	phone := textutil.NormalizePhone(ev.FromPhone)

	companyID, err := uc.resolveCompany()
	if err != nil {
		return err
	}

	// El pool de candidatos se resuelve fuera de la transacción: un lead
	// ya existente no lo necesita.
	advisors, err := uc.userRepo.ListAdvisors(companyID)
	if err != nil {
		return err
	}

	messageType := ev.MessageType
	if messageType == "" {
		messageType = entity.MessageTypeText
	}
	when := ev.Timestamp
	if when.IsZero() {
		when = time.Now()
	}

	return uc.txRunner.RunInbound(ctx, func(
		leadRepo repository.LeadRepository,
		convRepo repository.ConversationRepository,
		msgRepo repository.MessageRepository,
	) error {
		lead, err := leadRepo.FindByPhone(companyID, phone)
		if err != nil {
			return err
		}
		if lead == nil {
			name := ev.DisplayName
			if name == "" {
				name = phone
			}
			assignedTo := ""
			if idx := uc.selector.Pick(len(advisors)); idx >= 0 {
				assignedTo = advisors[idx].ID
			}
			lead = &entity.Lead{
				ID:           uuid.New().String(),
				Name:         name,
				Phone:        phone,
				Source:       entity.LeadSourceWhatsApp,
				Status:       entity.LeadStatusNew,
				Message:      ev.Body,
				CompanyID:    companyID,
				AssignedToID: assignedTo,
				CreatedAt:    when,
			}
			if err := leadRepo.Create(lead); err != nil {
				return err
			}
		}

		conv, err := convRepo.GetByLeadID(lead.ID)
		if err != nil {
			return err
		}
		if conv == nil {
			conv = &entity.Conversation{
				ID:            uuid.New().String(),
				LeadID:        lead.ID,
				CompanyID:     lead.CompanyID,
				LastMessageAt: when,
			}
			if err := convRepo.Create(conv); err != nil {
				return err
			}
		}

		if err := msgRepo.Create(&entity.Message{
			ID:                uuid.New().String(),
			ConversationID:    conv.ID,
			SenderType:        entity.SenderTypeLead,
			Content:           ev.Body,
			MediaURL:          ev.MediaURL,
			MessageType:       messageType,
			WhatsAppMessageID: ev.ExternalID,
			Status:            entity.MessageStatusDelivered,
			CreatedAt:         when,
		}); err != nil {
			return err
		}
		return convRepo.TouchLastMessage(conv.ID, when)
	})
}

func (uc *ChatUseCase) resolveCompany() (string, error) {
	if uc.defaultCompanyID != "" {
		company, err := uc.companyRepo.GetByID(uc.defaultCompanyID)
		if err != nil {
			return "", err
		}
		if company != nil {
			return company.ID, nil
		}
	}
	company, err := uc.companyRepo.First()
	if err != nil {
		return "", err
	}
	if company == nil {
		return "", domain.ErrInvalidInput
	}
	return company.ID, nil
}

func (uc *ChatUseCase) loadScoped(id authz.Identity, conversationID string) (*entity.Conversation, error) {
	conv, err := uc.convRepo.GetByID(conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, domain.ErrNotFound
	}
	if !id.CanAccessCompany(conv.CompanyID) {
		return nil, domain.ErrForbidden
	}
	return conv, nil
}

func toMessageResponse(m *entity.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderType:     m.SenderType,
		Content:        m.Content,
		MediaURL:       m.MediaURL,
		MessageType:    m.MessageType,
		Status:         m.Status,
		CreatedAt:      m.CreatedAt,
	}
}
