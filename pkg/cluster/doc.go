/*
Package cluster emits the cluster.json manifest.

When clustering is enabled in the configuration, the server writes a manifest
at startup naming this node and the fixed slot range [0, 16383]. The server
does not route by slot; every key is honored locally. The manifest exists so
external tooling can discover the node the same way it would discover members
of a multi-node deployment.
*/
package cluster
