package notify

import (
	"context"
	"fmt"
	"log"
	"time"
)

type Message struct {
	To   string
	Body string
}

// Notifier envia mensagens de forma assíncrona (fire-and-forget).
// Falha de envio é logada e nunca derruba nem reverte um agendamento.
type Notifier struct {
	sender Sender
	queue  chan Message
}

func NewNotifier(sender Sender) *Notifier {
	n := &Notifier{
		sender: sender,
		queue:  make(chan Message, 100),
	}

	go n.worker()
	return n
}

func (n *Notifier) worker() {
	for msg := range n.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := n.sender.Send(ctx, msg.To, msg.Body); err != nil {
			log.Printf("notify error (%s): %v", n.sender.ProviderID(), err)
		}
		cancel()
	}
}

func (n *Notifier) dispatch(msg Message) {
	if msg.To == "" {
		return
	}
	select {
	case n.queue <- msg:
	default:
		// fila cheia → descartamos a notificação (nunca quebrar API)
		log.Println("notify queue full, dropping message")
	}
}

// BusinessNewBooking avisa o salão de um novo agendamento online.
func (n *Notifier) BusinessNewBooking(businessPhone, customerName, date, startTime string) {
	n.dispatch(Message{
		To: businessPhone,
		Body: fmt.Sprintf(
			"Novo agendamento: %s em %s às %s.",
			customerName, date, startTime,
		),
	})
}

// CustomerConfirmation confirma o agendamento para o cliente.
func (n *Notifier) CustomerConfirmation(customerPhone, businessName, date, startTime string) {
	n.dispatch(Message{
		To: customerPhone,
		Body: fmt.Sprintf(
			"%s: seu horário está confirmado para %s às %s.",
			businessName, date, startTime,
		),
	})
}
