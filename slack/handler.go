package marbslack

import (
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
)

type Handler struct {
	helpHandler *HelpHandler
	dealHandler *DealHandler
}

func NewHandler(tradierToken string) *Handler {
	return &Handler{
		helpHandler: NewHelpHandler(),
		dealHandler: NewDealHandler(tradierToken),
	}
}

func (h *Handler) Handle(evt *socketmode.Event, client *socketmode.Client) error {
	data := evt.Data.(slack.SlashCommand)
	switch data.Command {
	case "/help":
		err := h.helpHandler.HandleCommand(evt, client)
		if err != nil {
			return err
		}
	case "/marb":
		err := h.dealHandler.HandleCommand(evt, client)
		if err != nil {
			return err
		}
	}

	client.Ack(*evt.Request)
	return nil
}
