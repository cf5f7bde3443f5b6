// Package esrelay embeds the esrelay relay in a Go program without the HTTP
// layer. It talks to Elasticsearch directly and returns the same messages the
// HTTP service would.
//
//	client, _ := esrelay.New(ctx, esrelay.WithElasticsearch("http", "localhost", 9200))
//	msg, _ := client.CreateIndex(ctx, "books")
//	msg, _ = client.AddDocument(ctx, "books", "Dune", "Spice")
//	msg, _ = client.GetDocument(ctx, "books", id)
//
// Transport failures are reported in the returned message, never as an
// error. Backend rejections are returned as errors matching ErrBackend.
package esrelay
