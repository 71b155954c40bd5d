// Package client provides the programmatic client for the tallykv server.
//
// A client is built from three parts: a connected transport (tcp, unix or
// http), a serializer matching the server's, and an optional requester
// identity forwarded with create, edit and delete requests.
package client
