/*
Package container locates the network namespace of a Docker container, so
that URLs can be probed from the perspective of the container instead of the
host.
*/
package container
