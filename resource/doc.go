// Package resource issues requests against the Outside.in hyperlocal API.
//
// Every request passes through the same pipeline: the resource path is
// resolved against http://{host}/v{version}, rewritten by the endpoint's
// Scoper, given query parameters by the endpoint's query.Params, and signed
// with the developer key and shared secret. The signed URL is fetched with a
// single blocking GET.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := resource.NewClient(resource.Config{
//		Key:    "dev-key",
//		Secret: "shared-secret",
//	}, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	data, err := client.Get(ctx, endpoint, "/states/NY/stories", inputs)
//
// # Error Handling
//
// Failures are returned as typed errors:
//
//   - SignatureError (ErrSignature): key or secret missing, no request made
//   - StatusError matching ErrForbidden: 403
//   - StatusError matching ErrNotFound: 404
//   - ServiceError: other failure carrying an X-Mashery-Error-Code header
//   - APIError: other failure, message taken from the body's "error" or
//     "errors" field
//
// Nothing is retried. Callers that need a deadline should set one on ctx.
package resource
