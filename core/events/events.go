/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package events binds handlers to nodes of a mounted HTML tree and
// dispatches interaction events to them.
package events

import (
	"golang.org/x/net/html"
)

// PointerDown is the event fired when a pointer is pressed on a node.
const PointerDown = "pointerdown"

// Event describes a dispatched event.
type Event struct {
	Type          string
	Target        *html.Node // node the event was dispatched on
	CurrentTarget *html.Node // node whose handler is running
}

// Handler reacts to an event.
type Handler func(Event)

type listener struct {
	typ     string
	handler Handler
}

// Registry holds the listeners attached to nodes.
// It is not safe for concurrent use.
type Registry struct {
	listeners map[*html.Node][]*listener
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		listeners: make(map[*html.Node][]*listener),
	}
}

// On attaches handler to target for events of type typ.
// The returned function detaches exactly this listener.
func (r *Registry) On(target *html.Node, typ string, handler Handler) (off func()) {
	l := &listener{typ: typ, handler: handler}
	r.listeners[target] = append(r.listeners[target], l)
	return func() { r.remove(target, l) }
}

func (r *Registry) remove(target *html.Node, l *listener) {
	ls := r.listeners[target]
	for i, cur := range ls {
		if cur == l {
			ls = append(ls[:i], ls[i+1:]...)
			break
		}
	}
	if len(ls) == 0 {
		delete(r.listeners, target)
		return
	}
	r.listeners[target] = ls
}

// Dispatch fires an event of type typ on target and bubbles it through the
// target's ancestors. It returns the number of handlers invoked.
func (r *Registry) Dispatch(target *html.Node, typ string) int {
	invoked := 0
	for n := target; n != nil; n = n.Parent {
		// Copy so handlers may detach listeners while running
		ls := append([]*listener(nil), r.listeners[n]...)
		for _, l := range ls {
			if l.typ != typ {
				continue
			}
			l.handler(Event{Type: typ, Target: target, CurrentTarget: n})
			invoked++
		}
	}
	return invoked
}

// Clear detaches all listeners.
func (r *Registry) Clear() {
	clear(r.listeners)
}

// Len returns the number of attached listeners.
func (r *Registry) Len() int {
	n := 0
	for _, ls := range r.listeners {
		n += len(ls)
	}
	return n
}
