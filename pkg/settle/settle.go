// Package settle implementa um combinador "espera todos, nunca rejeita":
// cada ramo concorrente registra seu próprio desfecho (valor ou erro) e a
// junção final sempre produz um resultado, mesmo que todos os ramos falhem.
package settle

import (
	"fmt"
)

// Result guarda o desfecho de um ramo: Ok(valor) ou Err(motivo).
type Result[T any] struct {
	Value T
	Err   error
}

// Ok indica se o ramo terminou sem erro.
func (r Result[T]) Ok() bool {
	return r.Err == nil
}

// Task representa um ramo em execução. O resultado é lido com Await.
type Task[T any] struct {
	done chan Result[T]
}

// Go dispara fn em uma goroutine própria. Panics no ramo são capturados e
// convertidos em erro, para que um ramo defeituoso nunca derrube a requisição.
func Go[T any](fn func() (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan Result[T], 1)}

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				var zero T
				t.done <- Result[T]{Value: zero, Err: fmt.Errorf("panic no ramo concorrente: %v", rec)}
			}
		}()

		value, err := fn()
		t.done <- Result[T]{Value: value, Err: err}
	}()

	return t
}

// Await bloqueia até o ramo terminar e devolve seu desfecho. Cada ramo
// escreve apenas no seu próprio slot, então não há estado compartilhado
// a proteger.
func (t *Task[T]) Await() Result[T] {
	return <-t.done
}
