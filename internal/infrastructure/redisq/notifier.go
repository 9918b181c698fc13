// Package redisq implementa el emisor de notificaciones sobre Redis.
// Cada evento se publica en un canal por empresa y se encola en una lista
// acotada que consume el poller de la UI. La entrega es best-effort: un
// fallo se registra y jamás se propaga al caso de uso que emitió.
package redisq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/mercavia/mercavia-api/internal/application/notify"
	"github.com/mercavia/mercavia-api/pkg/logger"
)

// Asegura que Notifier implementa notify.Publisher.
var _ notify.Publisher = (*Notifier)(nil)

// maxQueued eventos retenidos por empresa para el poller.
const maxQueued = 100

// Notifier publica eventos del core en Redis.
type Notifier struct {
	client *redis.Client
	log    *logger.Logger
}

// New crea el notificador y prueba la conexión. Un Redis caído no impide
// arrancar: solo se pierde la entrega de notificaciones.
func New(addr, password string, db int, log *logger.Logger) *Notifier {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("redis no disponible, notificaciones best-effort")
	}
	return &Notifier{client: client, log: log}
}

// Publish serializa el evento y lo entrega. Nunca devuelve error al caller.
func (n *Notifier) Publish(ctx context.Context, ev notify.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		n.log.Warn().Err(err).Str("type", ev.Type).Msg("serializar evento")
		return
	}
	channel := "events:" + ev.CompanyID
	queue := "notifications:" + ev.CompanyID

	pipe := n.client.Pipeline()
	pipe.Publish(ctx, channel, payload)
	pipe.LPush(ctx, queue, payload)
	pipe.LTrim(ctx, queue, 0, maxQueued-1)
	if _, err := pipe.Exec(ctx); err != nil {
		n.log.Warn().Err(err).
			Str("type", ev.Type).
			Str("company_id", ev.CompanyID).
			Msg("publicar evento")
	}
}

// Close cierra la conexión con Redis.
func (n *Notifier) Close() error {
	return n.client.Close()
}
