package server

// Broker fans one published value out to every subscriber. Used to wake
// the live-reload sockets after a rebuild.
type Broker struct {
	publishCh chan interface{}
	subCh     chan chan interface{}
	unsubCh   chan chan interface{}
}

func newBroker() *Broker {
	return &Broker{
		publishCh: make(chan interface{}, 1),
		subCh:     make(chan chan interface{}, 1),
		unsubCh:   make(chan chan interface{}, 1),
	}
}

func (b *Broker) Start() {
	subs := map[chan interface{}]struct{}{}
	for {
		select {
		case ch := <-b.subCh:
			subs[ch] = struct{}{}
		case ch := <-b.unsubCh:
			delete(subs, ch)
		case msg := <-b.publishCh:
			for ch := range subs {
				select {
				case ch <- msg:
				default:
				}
			}
		}
	}
}

func (b *Broker) Subscribe() chan interface{} {
	ch := make(chan interface{}, 1)
	b.subCh <- ch
	return ch
}

func (b *Broker) Unsubscribe(ch chan interface{}) {
	b.unsubCh <- ch
}

func (b *Broker) Publish(msg interface{}) {
	b.publishCh <- msg
}
