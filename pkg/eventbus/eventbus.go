package eventbus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event - любое событие в системе.
type Event interface {
	Name() string
}

// Listener - обработчик событий.
type Listener func(ctx context.Context, event Event) error

const listenerTimeout = time.Minute

// Bus - шина событий. Слушатели вызываются асинхронно, каждый в своей горутине.
type Bus struct {
	listeners map[string][]Listener
	mu        sync.RWMutex
	inflight  sync.WaitGroup
	logger    *zap.Logger
}

func New(logger *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
		logger:    logger,
	}
}

// Subscribe подписывает слушателя на событие.
func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

// Publish не ждёт слушателей. Ошибки слушателей только логируются.
func (b *Bus) Publish(_ context.Context, event Event) {
	b.mu.RLock()
	listeners := append([]Listener(nil), b.listeners[event.Name()]...)
	b.mu.RUnlock()

	for _, listener := range listeners {
		b.inflight.Add(1)
		go func(l Listener) {
			defer b.inflight.Done()
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("Паника в обработчике события",
						zap.String("event", event.Name()), zap.Any("panic", r))
				}
			}()

			// Контекст запроса к этому моменту может быть уже отменён.
			ctx, cancel := context.WithTimeout(context.Background(), listenerTimeout)
			defer cancel()

			if err := l(ctx, event); err != nil {
				b.logger.Error("Ошибка в обработчике события",
					zap.String("event", event.Name()),
					zap.Error(err),
				)
			}
		}(listener)
	}
}

// Wait дожидается завершения всех запущенных обработчиков. Нужен при остановке сервера и в тестах.
func (b *Bus) Wait() {
	b.inflight.Wait()
}
