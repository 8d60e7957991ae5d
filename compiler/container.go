package compiler

import "github.com/TeddyRux/marathon/domain"

// Platform labels attached to AppC image references. Required by that
// format's compatibility rules and fixed regardless of the offer.
const (
	appcLabelOS   = "linux"
	appcLabelArch = "amd64"
)

// buildContainer compiles the per-container sandbox descriptor: volume
// mounts resolved against the pod's volume list, and the image
// reference.
func buildContainer(pod *domain.PodSpec, c *domain.ContainerSpec) domain.ContainerDescriptor {
	desc := domain.ContainerDescriptor{Type: domain.ContainerTypeMesos}

	for _, mount := range c.VolumeMounts {
		vol, ok := findVolume(pod, mount.Name)
		if !ok {
			// Mounts naming an undefined volume are dropped; semantic
			// validation happens upstream of this compiler.
			continue
		}
		mode := domain.MountModeRW
		if mount.ReadOnly != nil && *mount.ReadOnly {
			mode = domain.MountModeRO
		}
		desc.Mounts = append(desc.Mounts, domain.MountDescriptor{
			ContainerPath: mount.MountPath,
			HostPath:      vol.HostPath,
			Mode:          mode,
		})
	}

	if c.Image != nil {
		desc.Image = buildImage(c.Image)
	}

	return desc
}

// findVolume returns the first pod volume with the given name.
func findVolume(pod *domain.PodSpec, name string) (domain.VolumeSpec, bool) {
	for _, v := range pod.Volumes {
		if v.Name == name {
			return v, true
		}
	}
	return domain.VolumeSpec{}, false
}

// buildImage builds the image reference. The cached flag is the
// negation of force-pull and stays unset when force-pull was not
// declared. AppC references additionally carry the fixed platform
// labels.
func buildImage(img *domain.ImageSpec) *domain.ImageDescriptor {
	desc := &domain.ImageDescriptor{Kind: img.Kind, ID: img.ID}
	if img.ForcePull != nil {
		cached := !*img.ForcePull
		desc.Cached = &cached
	}
	if img.Kind == domain.ImageKindAppC {
		desc.Labels = []domain.Label{
			{Key: "os", Value: appcLabelOS},
			{Key: "arch", Value: appcLabelArch},
		}
	}
	return desc
}
