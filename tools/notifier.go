package tools

import (
	"context"

	"github.com/golang/glog"
)

// ImageSearcher finds a decorative image to attach.
type ImageSearcher interface {
	RandomImageURL(ctx context.Context) (string, error)
}

// Messenger is the subset of the VK API the notifier drives.
type Messenger interface {
	UploadServer(ctx context.Context) (string, error)
	UploadPhoto(ctx context.Context, uploadURL, imageURL string) (UploadedPhoto, error)
	SavePhoto(ctx context.Context, p UploadedPhoto) (SavedPhoto, error)
	Send(ctx context.Context, peerID int64, text, attachment string) error
}

type deliveryState int

const (
	stateIdle deliveryState = iota
	stateImageFetched
	stateUploaded
	stateSaved
	statePlainSend
	stateSent
)

func (s deliveryState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateImageFetched:
		return "image fetched"
	case stateUploaded:
		return "uploaded"
	case stateSaved:
		return "saved"
	case statePlainSend:
		return "plain send"
	case stateSent:
		return "sent"
	}
	return "unknown"
}

// Notifier posts reminders to one VK conversation.
type Notifier struct {
	vk     Messenger
	images ImageSearcher
	peerID int64
}

func NewNotifier(vk Messenger, images ImageSearcher, peerID int64) *Notifier {
	return &Notifier{
		vk:     vk,
		images: images,
		peerID: peerID,
	}
}

// Dispatch sends text without an attachment.
func (n *Notifier) Dispatch(ctx context.Context, text string) error {
	return n.vk.Send(ctx, n.peerID, text, "")
}

// DispatchWithImage sends text with an image attached. A random image is
// searched for when imageURL is empty. Any failure before the final send
// falls back to a plain text message.
func (n *Notifier) DispatchWithImage(ctx context.Context, text, imageURL string) error {
	var (
		uploadURL string
		uploaded  UploadedPhoto
		saved     SavedPhoto
		err       error
		sendErr   error
	)

	state := stateIdle
	for {
		next := state
		switch state {
		case stateIdle:
			if imageURL == "" {
				imageURL, err = n.images.RandomImageURL(ctx)
			}
			next = stateImageFetched
		case stateImageFetched:
			uploadURL, err = n.vk.UploadServer(ctx)
			if err == nil {
				uploaded, err = n.vk.UploadPhoto(ctx, uploadURL, imageURL)
			}
			next = stateUploaded
		case stateUploaded:
			saved, err = n.vk.SavePhoto(ctx, uploaded)
			next = stateSaved
		case stateSaved:
			sendErr = n.vk.Send(ctx, n.peerID, text, saved.Attachment())
			next = stateSent
		case statePlainSend:
			sendErr = n.Dispatch(ctx, text)
			next = stateSent
		case stateSent:
			return sendErr
		}

		if err != nil {
			glog.Warningf("Attaching image failed in state %s, sending text only: %v", state, err)
			next = statePlainSend
			err = nil
		}
		glog.V(1).Infof("Delivery %s -> %s", state, next)
		state = next
	}
}
