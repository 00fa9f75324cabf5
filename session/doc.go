// SPDX-License-Identifier: EPL-2.0

// Package session wires one playback session: it builds the processing
// graph for the configured mode, loads the sample over a fetch.Fetcher,
// and starts a Renderer on the output Destination once the sample is
// decoded.
//
// A Controller moves through Idle, GraphWired, SampleLoading, Playing and
// Stopped. Orientation updates are accepted from GraphWired on and reach
// the rotator without blocking the audio path:
//
//	ctrl, err := session.NewController(sess)
//	if err != nil {
//		return err
//	}
//	defer ctrl.Stop()
//
//	if err := ctrl.Setup(cfg); err != nil {
//		return err
//	}
//	if err := ctrl.Start(ctx); err != nil {
//		return err
//	}
//	_ = ctrl.UpdateOrientation(orientation.Vec3{X: -1, Y: 0, Z: 0})
package session
